// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/modeldesk/pkg/records"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Row is a keyed record as shown in listings.
type Row struct {
	Key    string
	Record records.Record
}

// Labeler maps a capability flag to its display label.
type Labeler func(flag string) string

// RecordsToTableData converts records to table format. The wide variant adds
// capabilities, parameters and the description.
func RecordsToTableData(rows []Row, wide bool, label Labeler) Data {
	headers := []string{"#", "Key", "Name", "Base Model", "Active", "Tags"}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignCenter, AlignLeft}
	if wide {
		headers = append(headers, "Capabilities", "Params", "Description")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	}

	out := make([][]string, 0, len(rows))
	for i, row := range rows {
		r := row.Record
		line := []string{
			strconv.Itoa(i),
			row.Key,
			r.Name,
			deref(r.BaseModelID),
			yesNo(r.IsActive),
			strings.Join(r.TagNames(), ", "),
		}
		if wide {
			line = append(line,
				strings.Join(Capabilities(r, label), ", "),
				Params(r),
				truncate(r.Meta.Description, 60),
			)
		}
		out = append(out, line)
	}

	return Data{Headers: headers, Rows: out, ColumnAlignment: align}
}

// RecordDetails converts one record to a field/value table.
func RecordDetails(key string, r records.Record, label Labeler) Data {
	rows := [][]string{
		{"Key", key},
		{"ID", r.ID},
		{"Name", r.Name},
		{"Base Model", deref(r.BaseModelID)},
		{"Owned By", r.OwnedBy},
		{"Active", yesNo(r.IsActive)},
		{"Description", r.Meta.Description},
		{"Tags", strings.Join(r.TagNames(), ", ")},
		{"Capabilities", strings.Join(Capabilities(r, label), ", ")},
		{"Params", Params(r)},
		{"System Prompt", truncate(r.Params.System, 80)},
		{"Tools", strings.Join(r.Meta.ToolIDs, ", ")},
	}
	if r.OpenAI.ID != "" {
		rows = append(rows, []string{"Upstream", r.OpenAI.ID})
	}

	return Data{
		Headers:         []string{"Field", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// Capabilities returns the labels of the enabled capability flags, sorted by
// flag name.
func Capabilities(r records.Record, label Labeler) []string {
	var flags []string
	for flag, on := range r.Meta.Capabilities {
		if on {
			flags = append(flags, flag)
		}
	}
	sort.Strings(flags)
	if label != nil {
		for i, f := range flags {
			flags[i] = label(f)
		}
	}
	return flags
}

// Params summarizes the generation parameters that are set.
func Params(r records.Record) string {
	p := r.Params
	var parts []string
	addFloat := func(name string, v *float64) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s=%s", name, strconv.FormatFloat(*v, 'f', -1, 64)))
		}
	}
	addInt := func(name string, v *int64) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", name, *v))
		}
	}
	addFloat(records.ParamTemperature, p.Temperature)
	addFloat(records.ParamTopP, p.TopP)
	addInt(records.ParamTopK, p.TopK)
	addInt(records.ParamMaxTokens, p.MaxTokens)
	addInt(records.ParamSeed, p.Seed)
	addFloat(records.ParamFrequencyPenalty, p.FrequencyPenalty)
	if p.ReasoningEffort != "" {
		parts = append(parts, records.ParamReasoningEffort+"="+p.ReasoningEffort)
	}
	return strings.Join(parts, " ")
}

// HistoryToTableData lists undo snapshots, most recent first.
func HistoryToTableData(snapshots [][]Row) Data {
	rows := make([][]string, 0, len(snapshots))
	for i := len(snapshots) - 1; i >= 0; i-- {
		keys := make([]string, 0, len(snapshots[i]))
		for _, r := range snapshots[i] {
			keys = append(keys, r.Key)
		}
		rows = append(rows, []string{
			strconv.Itoa(len(snapshots) - i),
			strconv.Itoa(len(keys)),
			truncate(strings.Join(keys, ", "), 70),
		})
	}
	return Data{
		Headers:         []string{"Step", "Records", "Keys"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignLeft},
	}
}

// DocumentToTableData lists the top-level keys of a JSON document with their
// values as compact JSON.
func DocumentToTableData(doc map[string]any) Data {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, truncate(compact(doc[k]), 80)})
	}
	return Data{
		Headers:         []string{"Field", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

func compact(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
