// Package reconcile keeps the pristine raw copy of every imported record
// and merges normalized edits back onto it at export time, so that fields
// the editor does not understand survive a round trip untouched.
package reconcile

import (
	"sort"

	"github.com/agentstation/modeldesk/internal/jsonvalue"
)

// RawStore maps a record key to the raw object captured at import.
// Entries are deep-copied on the way in and on the way out; the stored
// objects are never mutated.
type RawStore struct {
	raw map[string]map[string]any
}

// NewRawStore creates an empty store.
func NewRawStore() *RawStore {
	return &RawStore{raw: make(map[string]map[string]any)}
}

// Capture stores a copy of raw under key. Capturing the same key twice
// keeps the first copy.
func (s *RawStore) Capture(key string, raw map[string]any) {
	if _, exists := s.raw[key]; exists {
		return
	}
	s.raw[key] = jsonvalue.CopyObject(raw)
}

// Get returns a deep copy of the raw object for key.
func (s *RawStore) Get(key string) (map[string]any, bool) {
	raw, ok := s.raw[key]
	if !ok {
		return nil, false
	}
	return jsonvalue.CopyObject(raw), true
}

// Has reports whether key has a raw counterpart.
func (s *RawStore) Has(key string) bool {
	_, ok := s.raw[key]
	return ok
}

// Len returns the number of captured records.
func (s *RawStore) Len() int {
	return len(s.raw)
}

// Keys returns the captured keys in sorted order.
func (s *RawStore) Keys() []string {
	keys := make([]string, 0, len(s.raw))
	for k := range s.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a deep copy of the whole store, suitable for persisting.
func (s *RawStore) Snapshot() map[string]map[string]any {
	out := make(map[string]map[string]any, len(s.raw))
	for k, v := range s.raw {
		out[k] = jsonvalue.CopyObject(v)
	}
	return out
}

// RestoreRawStore rebuilds a store from a Snapshot.
func RestoreRawStore(snapshot map[string]map[string]any) *RawStore {
	s := NewRawStore()
	for k, v := range snapshot {
		s.Capture(k, v)
	}
	return s
}
