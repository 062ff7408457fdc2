package convert

import (
	"fmt"
	"io"
	"sort"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/modeldesk/pkg/records"
)

// Labeler maps a capability flag to its display label.
type Labeler func(flag string) string

// WriteMarkdown writes a summary table of the records. label may be nil, in
// which case capability flags are shown by name.
func WriteMarkdown(w io.Writer, rs []records.Record, label Labeler) error {
	if label == nil {
		label = func(flag string) string { return flag }
	}

	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{
			cell(r.ID),
			cell(r.Name),
			cell(baseModel(r)),
			active(r.IsActive),
			cell(strings.Join(r.TagNames(), ", ")),
			cell(strings.Join(enabledCapabilities(r, label), ", ")),
		})
	}

	return md.NewMarkdown(w).
		H1("Models").
		PlainTextf("%d model definitions.", len(rs)).
		LF().
		Table(md.TableSet{
			Header: []string{"ID", "Name", "Base Model", "Active", "Tags", "Capabilities"},
			Rows:   rows,
		}).
		Build()
}

func baseModel(r records.Record) string {
	if r.BaseModelID == nil {
		return ""
	}
	return *r.BaseModelID
}

func active(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func enabledCapabilities(r records.Record, label Labeler) []string {
	flags := make([]string, 0, len(r.Meta.Capabilities))
	for flag, on := range r.Meta.Capabilities {
		if on {
			flags = append(flags, flag)
		}
	}
	sort.Strings(flags)
	for i, flag := range flags {
		flags[i] = label(flag)
	}
	return flags
}

// cell escapes characters that would break a table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// Summary returns a short plain-text description of a record, used by list
// views that cannot render a table.
func Summary(r records.Record) string {
	if base := baseModel(r); base != "" {
		return fmt.Sprintf("%s (%s, based on %s)", r.DisplayName(), r.ID, base)
	}
	return fmt.Sprintf("%s (%s)", r.DisplayName(), r.ID)
}
