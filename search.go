package modeldesk

import (
	"strings"

	"github.com/agentstation/modeldesk/pkg/records"
)

// Search returns the records whose id, name, description or tag names
// contain query, ignoring case. An empty query matches every record.
func (w *Workspace) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	return w.filter(func(r records.Record) bool {
		if q == "" {
			return true
		}
		fields := append([]string{r.ID, r.Name, r.Meta.Description}, r.TagNames()...)
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	})
}

// FilterByTag returns the records carrying tag.
func (w *Workspace) FilterByTag(tag string) []Entry {
	return w.filter(func(r records.Record) bool {
		return r.HasTag(tag)
	})
}

// Tags returns the distinct tag names used across the workspace in first
// seen order.
func (w *Workspace) Tags() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	seen := make(map[string]bool)
	var tags []string
	for _, e := range w.entries {
		for _, name := range e.Record.TagNames() {
			if !seen[name] {
				seen[name] = true
				tags = append(tags, name)
			}
		}
	}
	return tags
}

func (w *Workspace) filter(match func(records.Record) bool) []Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []Entry
	for _, e := range w.entries {
		if match(e.Record) {
			out = append(out, Entry{Key: e.Key, Record: e.Record.Clone()})
		}
	}
	return out
}
