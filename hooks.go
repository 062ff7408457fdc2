package modeldesk

import (
	"sync"

	"github.com/agentstation/modeldesk/pkg/records"
)

// Hook function types for record events
type (
	// RecordAddedHook is called when a record enters the workspace
	RecordAddedHook func(key string, record records.Record)

	// RecordUpdatedHook is called when a record changes
	RecordUpdatedHook func(key string, old, new records.Record)

	// RecordRemovedHook is called when a record leaves the workspace
	RecordRemovedHook func(key string, record records.Record)
)

// hooks manages event callbacks for workspace changes
type hooks struct {
	mu              sync.RWMutex
	onRecordAdded   []RecordAddedHook
	onRecordUpdated []RecordUpdatedHook
	onRecordRemoved []RecordRemovedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnRecordAdded registers a callback for when records are added
func (w *Workspace) OnRecordAdded(fn RecordAddedHook) {
	w.hooks.mu.Lock()
	defer w.hooks.mu.Unlock()
	w.hooks.onRecordAdded = append(w.hooks.onRecordAdded, fn)
}

// OnRecordUpdated registers a callback for when records are updated
func (w *Workspace) OnRecordUpdated(fn RecordUpdatedHook) {
	w.hooks.mu.Lock()
	defer w.hooks.mu.Unlock()
	w.hooks.onRecordUpdated = append(w.hooks.onRecordUpdated, fn)
}

// OnRecordRemoved registers a callback for when records are removed
func (w *Workspace) OnRecordRemoved(fn RecordRemovedHook) {
	w.hooks.mu.Lock()
	defer w.hooks.mu.Unlock()
	w.hooks.onRecordRemoved = append(w.hooks.onRecordRemoved, fn)
}

// trigger compares two record sets by key and fires the matching hooks.
// Hooks run after the workspace lock is released.
func (h *hooks) trigger(before, after []Entry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onRecordAdded)+len(h.onRecordUpdated)+len(h.onRecordRemoved) == 0 {
		return
	}

	old := make(map[string]records.Record, len(before))
	for _, e := range before {
		old[e.Key] = e.Record
	}
	current := make(map[string]bool, len(after))

	for _, e := range after {
		current[e.Key] = true
		prev, existed := old[e.Key]
		switch {
		case !existed:
			for _, hook := range h.onRecordAdded {
				hook(e.Key, e.Record)
			}
		case !prev.Equal(e.Record):
			for _, hook := range h.onRecordUpdated {
				hook(e.Key, prev, e.Record)
			}
		}
	}

	for _, e := range before {
		if !current[e.Key] {
			for _, hook := range h.onRecordRemoved {
				hook(e.Key, e.Record)
			}
		}
	}
}
