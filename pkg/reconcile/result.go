package reconcile

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Result is the outcome of merging a whole workspace for export.
type Result struct {
	Records []map[string]any

	Created         int // records with no raw counterpart
	Modified        int // imported records whose export differs from the import
	Unchanged       int // imported records exported byte-for-byte equivalent
	PreservedFields int // unknown fields carried through from raw records
}

// JSON renders the merged records as an indented JSON array.
func (r *Result) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.Records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Summary returns a one-line description of the merge.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d records (%d new, %d modified, %d unchanged), %d unknown fields preserved",
		len(r.Records), r.Created, r.Modified, r.Unchanged, r.PreservedFields)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
