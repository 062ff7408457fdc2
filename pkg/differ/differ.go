// Package differ compares model documents and reports field level changes.
package differ

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/agentstation/modeldesk/internal/jsonvalue"
)

// Document is a keyed model document.
type Document struct {
	Key   string
	Value map[string]any
}

// Differ handles change detection between documents.
type Differ interface {
	// Documents compares two versions of one document.
	Documents(before, after map[string]any) []FieldChange

	// Workspaces compares two ordered document sets matched by key.
	Workspaces(before, after []Document) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreFields   map[string]bool
	deepComparison bool
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields:   make(map[string]bool),
		deepComparison: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Changes compares two documents with the default settings.
func Changes(before, after map[string]any) []FieldChange {
	return New().Documents(before, after)
}

// Documents compares two versions of one document. Changes are sorted by
// path. Numbers compare by value, so 1 and 1.0 are equal.
func (diff *differ) Documents(before, after map[string]any) []FieldChange {
	var changes []FieldChange
	diff.walk("", before, after, &changes)
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}

func (diff *differ) walk(prefix string, before, after map[string]any, out *[]FieldChange) {
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}

	for k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if diff.ignoreFields[path] {
			continue
		}

		oldVal, hadOld := before[k]
		newVal, hasNew := after[k]

		switch {
		case !hadOld:
			*out = append(*out, FieldChange{Path: path, NewValue: render(newVal), Type: ChangeTypeAdd})
		case !hasNew:
			*out = append(*out, FieldChange{Path: path, OldValue: render(oldVal), Type: ChangeTypeRemove})
		default:
			oldMap, oldIsMap := oldVal.(map[string]any)
			newMap, newIsMap := newVal.(map[string]any)
			if diff.deepComparison && oldIsMap && newIsMap {
				diff.walk(path, oldMap, newMap, out)
				continue
			}
			if !jsonvalue.Equivalent(oldVal, newVal) {
				*out = append(*out, FieldChange{
					Path:     path,
					OldValue: render(oldVal),
					NewValue: render(newVal),
					Type:     ChangeTypeUpdate,
				})
			}
		}
	}
}

// Workspaces compares two ordered document sets matched by key. Added and
// updated entries follow the order of after, removed entries the order of
// before.
func (diff *differ) Workspaces(before, after []Document) *Changeset {
	cs := &Changeset{
		Added:   []Document{},
		Updated: []DocumentUpdate{},
		Removed: []Document{},
	}

	beforeMap := make(map[string]map[string]any, len(before))
	for _, d := range before {
		beforeMap[d.Key] = d.Value
	}
	afterKeys := make(map[string]bool, len(after))

	for _, d := range after {
		afterKeys[d.Key] = true
		old, ok := beforeMap[d.Key]
		if !ok {
			cs.Added = append(cs.Added, d)
			continue
		}
		if changes := diff.Documents(old, d.Value); len(changes) > 0 {
			cs.Updated = append(cs.Updated, DocumentUpdate{Key: d.Key, Changes: changes})
		}
	}

	for _, d := range before {
		if !afterKeys[d.Key] {
			cs.Removed = append(cs.Removed, d)
		}
	}

	cs.Summary = calculateSummary(cs)
	return cs
}

// render formats a value for display as compact JSON.
func render(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return strings.TrimSpace(err.Error())
	}
	return string(data)
}
