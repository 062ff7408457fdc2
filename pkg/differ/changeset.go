package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/modeldesk/pkg/records"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates a field was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates a field was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates a field was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Path     string     `json:"path"`                // Field path (e.g., "params.temperature")
	OldValue string     `json:"old_value,omitempty"` // Previous value as JSON
	NewValue string     `json:"new_value,omitempty"` // New value as JSON
	Type     ChangeType `json:"type"`
}

// DocumentUpdate lists the changes made to one document.
type DocumentUpdate struct {
	Key     string        `json:"key"`
	Changes []FieldChange `json:"changes"`
}

// Changeset represents all changes between two document sets.
type Changeset struct {
	Added   []Document       `json:"-"`
	Updated []DocumentUpdate `json:"updated"`
	Removed []Document       `json:"-"`
	Summary ChangesetSummary `json:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	Added        int `json:"added"`
	Updated      int `json:"updated"`
	Removed      int `json:"removed"`
	FieldChanges int `json:"field_changes"`
	TotalChanges int `json:"total_changes"`
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return !c.HasChanges()
}

func calculateSummary(c *Changeset) ChangesetSummary {
	fields := 0
	for _, u := range c.Updated {
		fields += len(u.Changes)
	}
	return ChangesetSummary{
		Added:        len(c.Added),
		Updated:      len(c.Updated),
		Removed:      len(c.Removed),
		FieldChanges: fields,
		TotalChanges: len(c.Added) + len(c.Updated) + len(c.Removed),
	}
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes"
	}
	var parts []string
	if c.Summary.Added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", c.Summary.Added))
	}
	if c.Summary.Updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated (%d fields)", c.Summary.Updated, c.Summary.FieldChanges))
	}
	if c.Summary.Removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", c.Summary.Removed))
	}
	return fmt.Sprintf("Changeset: %s (Total: %d changes)", strings.Join(parts, ", "), c.Summary.TotalChanges)
}

// Print writes a detailed, human-readable view of the changeset.
func (c *Changeset) Print(w io.Writer) {
	fmt.Fprintln(w, c.String())
	if c.IsEmpty() {
		return
	}
	fmt.Fprintln(w, strings.Repeat("─", 80))

	if len(c.Added) > 0 {
		fmt.Fprintf(w, "\n➕ Added Records (%d):\n", len(c.Added))
		for _, d := range c.Added {
			printDocument(w, d)
		}
	}

	if len(c.Updated) > 0 {
		fmt.Fprintf(w, "\n🔄 Updated Records (%d):\n", len(c.Updated))
		for _, u := range c.Updated {
			fmt.Fprintf(w, "  • %s:\n", u.Key)
			for _, change := range u.Changes {
				fmt.Fprintf(w, "    - %s\n", change)
			}
		}
	}

	if len(c.Removed) > 0 {
		fmt.Fprintf(w, "\n⚠️  Removed Records (%d):\n", len(c.Removed))
		for _, d := range c.Removed {
			printDocument(w, d)
		}
	}
}

func printDocument(w io.Writer, d Document) {
	r := records.Normalize(d.Value)
	fmt.Fprintf(w, "  • %s", d.Key)
	if r.Name != "" && r.Name != d.Key {
		fmt.Fprintf(w, " (%s)", r.Name)
	}
	fmt.Fprintln(w)
}

// String formats a field change on one line.
func (f FieldChange) String() string {
	switch f.Type {
	case ChangeTypeAdd:
		return fmt.Sprintf("%s: + %s", f.Path, f.NewValue)
	case ChangeTypeRemove:
		return fmt.Sprintf("%s: - %s", f.Path, f.OldValue)
	default:
		return fmt.Sprintf("%s: %s → %s", f.Path, f.OldValue, f.NewValue)
	}
}
