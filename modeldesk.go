package modeldesk

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"

	"github.com/agentstation/modeldesk/internal/jsonvalue"
	"github.com/agentstation/modeldesk/pkg/convert"
	"github.com/agentstation/modeldesk/pkg/differ"
	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/history"
	"github.com/agentstation/modeldesk/pkg/reconcile"
	"github.com/agentstation/modeldesk/pkg/records"
)

// Entry pairs a record with the key it is tracked under.
type Entry = reconcile.Entry

// Workspace holds the records being edited, the raw copies they were
// imported from and the undo history.
type Workspace struct {
	mu      sync.RWMutex
	entries []Entry
	raw     *reconcile.RawStore
	history *history.Stack[[]Entry]
	config  *config
	hooks   *hooks
}

// New creates an empty workspace.
func New(opts ...Option) (*Workspace, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	return &Workspace{
		entries: []Entry{},
		raw:     reconcile.NewRawStore(),
		history: history.New(cfg.historyCapacity, cloneEntries),
		config:  cfg,
		hooks:   newHooks(),
	}, nil
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Key: e.Key, Record: e.Record.Clone()}
	}
	return out
}

// Import replaces the workspace with the records in data, a JSON object or
// an array of objects. Each record is keyed by its id, or by a generated
// key when the id is empty or already used. Import clears the undo history.
// On a parse error the workspace is left unchanged.
func (w *Workspace) Import(data []byte) (int, error) {
	docs, err := jsonvalue.DecodeObjects(data)
	if err != nil {
		return 0, errors.WrapResource("import", "workspace", "", err)
	}

	raw := reconcile.NewRawStore()
	entries := make([]Entry, 0, len(docs))
	taken := make(map[string]bool, len(docs))
	generated := 0
	for _, doc := range docs {
		r := records.Normalize(doc)
		key := r.ID
		if key == "" || taken[key] {
			key = w.freshKey(func(k string) bool { return taken[k] })
			generated++
		}
		taken[key] = true
		raw.Capture(key, doc)
		entries = append(entries, Entry{Key: key, Record: r})
	}

	w.mu.Lock()
	before := w.entries
	w.entries = entries
	w.raw = raw
	w.history.Clear()
	w.mu.Unlock()

	w.config.logger.Info().
		Int("records", len(entries)).
		Int("generated_keys", generated).
		Msg("Imported records")
	w.hooks.trigger(before, entries)
	return len(entries), nil
}

// Result merges every record onto its raw copy.
func (w *Workspace) Result() *reconcile.Result {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return reconcile.MergeAll(w.raw, w.entries)
}

// Export returns the merged records as an indented JSON array.
func (w *Workspace) Export() ([]byte, error) {
	data, err := w.Result().JSON()
	if err != nil {
		return nil, errors.WrapResource("export", "workspace", "", err)
	}
	return data, nil
}

// WriteExport writes the merged records to out in the given format.
func (w *Workspace) WriteExport(out io.Writer, format convert.Format, label convert.Labeler) error {
	if err := convert.Write(out, format, w.Result().Records, label); err != nil {
		return errors.WrapResource("export", "workspace", "", err)
	}
	return nil
}

// Diff compares the imported raw records with what Export would produce.
// With keys, only those records are compared.
func (w *Workspace) Diff(keys ...string) *differ.Changeset {
	w.mu.RLock()
	defer w.mu.RUnlock()

	want := func(string) bool { return true }
	if len(keys) > 0 {
		want = func(k string) bool { return slices.Contains(keys, k) }
	}

	var before, after []differ.Document
	for _, k := range w.raw.Keys() {
		if want(k) {
			raw, _ := w.raw.Get(k)
			before = append(before, differ.Document{Key: k, Value: raw})
		}
	}
	for _, e := range w.entries {
		if want(e.Key) {
			raw, _ := w.raw.Get(e.Key)
			after = append(after, differ.Document{Key: e.Key, Value: reconcile.MergeToRaw(raw, e.Record)})
		}
	}
	return differ.New().Workspaces(before, after)
}

// Records returns copies of all entries in order.
func (w *Workspace) Records() []Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return cloneEntries(w.entries)
}

// Get returns a copy of the record stored under key.
func (w *Workspace) Get(key string) (records.Record, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := indexOf(w.entries, key)
	if i < 0 {
		return records.Record{}, errors.NewNotFoundError("record", key)
	}
	return w.entries[i].Record.Clone(), nil
}

// Raw returns a copy of the raw record imported under key.
func (w *Workspace) Raw(key string) (map[string]any, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.raw.Get(key)
}

// Keys returns the record keys in order.
func (w *Workspace) Keys() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	keys := make([]string, len(w.entries))
	for i, e := range w.entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of records.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// HistoryLen returns the number of undo snapshots available.
func (w *Workspace) HistoryLen() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.history.Len()
}

// History returns the undo snapshots, oldest first.
func (w *Workspace) History() [][]Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.history.Entries()
}

// Add appends a record created in the editor. An empty id is replaced with
// a generated one. It returns the key the record is stored under.
func (w *Workspace) Add(r records.Record) (string, error) {
	var key string
	err := w.mutate("add", func(entries []Entry) ([]Entry, error) {
		if r.ID == "" {
			r.ID = w.config.newID()
		}
		key = w.keyFor(entries, r.ID)
		return append(entries, Entry{Key: key, Record: r.Clone()}), nil
	})
	return key, err
}

// Update applies fn to a copy of the record under key and stores the result.
func (w *Workspace) Update(key string, fn func(*records.Record) error) error {
	return w.mutate("update", func(entries []Entry) ([]Entry, error) {
		i := indexOf(entries, key)
		if i < 0 {
			return nil, errors.NewNotFoundError("record", key)
		}
		r := entries[i].Record
		if err := fn(&r); err != nil {
			return nil, err
		}
		entries[i].Record = r
		return entries, nil
	})
}

// SetField sets the field at a dotted path, for example
// "params.temperature" or "meta.capabilities.vision".
func (w *Workspace) SetField(key, path string, value any) error {
	return w.Update(key, func(r *records.Record) error {
		updated, err := records.SetField(*r, path, value)
		if err != nil {
			return err
		}
		*r = updated
		return nil
	})
}

// Delete removes the record under key. Its raw copy is kept so undo can
// restore it with its unknown fields intact.
func (w *Workspace) Delete(key string) error {
	return w.mutate("delete", func(entries []Entry) ([]Entry, error) {
		i := indexOf(entries, key)
		if i < 0 {
			return nil, errors.NewNotFoundError("record", key)
		}
		return slices.Delete(entries, i, i+1), nil
	})
}

// Duplicate inserts a copy of the record under key right after it. The copy
// gets a new id derived from the original and has no raw counterpart, so it
// exports as a new record. It returns the new key.
func (w *Workspace) Duplicate(key string) (string, error) {
	var newKey string
	err := w.mutate("duplicate", func(entries []Entry) ([]Entry, error) {
		i := indexOf(entries, key)
		if i < 0 {
			return nil, errors.NewNotFoundError("record", key)
		}
		dup := entries[i].Record.Clone()
		dup.ID = w.copyID(entries, dup.ID)
		if dup.Name != "" {
			dup.Name += " (copy)"
		}
		newKey = w.keyFor(entries, dup.ID)
		return slices.Insert(entries, i+1, Entry{Key: newKey, Record: dup}), nil
	})
	return newKey, err
}

// Move relocates the record under key to position index.
func (w *Workspace) Move(key string, index int) error {
	return w.mutate("move", func(entries []Entry) ([]Entry, error) {
		i := indexOf(entries, key)
		if i < 0 {
			return nil, errors.NewNotFoundError("record", key)
		}
		if index < 0 || index >= len(entries) {
			return nil, errors.NewValidationError("index", index,
				fmt.Sprintf("must be between 0 and %d", len(entries)-1))
		}
		e := entries[i]
		entries = slices.Delete(entries, i, i+1)
		return slices.Insert(entries, index, e), nil
	})
}

// Undo restores the record set saved before the most recent mutation. It
// returns errors.ErrNothingToUndo when the history is empty.
func (w *Workspace) Undo() error {
	w.mu.Lock()
	prev, ok := w.history.Pop()
	if !ok {
		w.mu.Unlock()
		return errors.ErrNothingToUndo
	}
	before := w.entries
	w.entries = prev
	remaining := w.history.Len()
	w.mu.Unlock()

	w.config.logger.Debug().Int("remaining", remaining).Msg("Undo")
	w.hooks.trigger(before, prev)
	return nil
}

// mutate runs fn on a copy of the entries. When fn succeeds the previous
// entries are pushed onto the history and the copy becomes current.
func (w *Workspace) mutate(op string, fn func([]Entry) ([]Entry, error)) error {
	w.mu.Lock()
	before := w.entries
	next, err := fn(cloneEntries(before))
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.history.Push(before)
	w.entries = next
	depth := w.history.Len()
	w.mu.Unlock()

	w.config.logger.Debug().
		Str("operation", op).
		Int("records", len(next)).
		Int("history", depth).
		Msg("Workspace changed")
	w.hooks.trigger(before, next)
	return nil
}

func indexOf(entries []Entry, key string) int {
	return slices.IndexFunc(entries, func(e Entry) bool { return e.Key == key })
}

// keyFor returns id when no entry or raw record uses it as a key, and a
// fresh key otherwise.
func (w *Workspace) keyFor(entries []Entry, id string) string {
	taken := func(k string) bool {
		return indexOf(entries, k) >= 0 || w.raw.Has(k)
	}
	if id != "" && !taken(id) {
		return id
	}
	return w.freshKey(taken)
}

func (w *Workspace) freshKey(taken func(string) bool) string {
	base := w.config.newID()
	key := base
	for n := 2; taken(key); n++ {
		key = base + "-" + strconv.Itoa(n)
	}
	return key
}

// copyID derives an unused record id for a duplicate of id.
func (w *Workspace) copyID(entries []Entry, id string) string {
	if id == "" {
		return w.config.newID()
	}
	used := func(candidate string) bool {
		return slices.ContainsFunc(entries, func(e Entry) bool {
			return e.Record.ID == candidate || e.Key == candidate
		})
	}
	candidate := id + "-copy"
	for n := 2; used(candidate); n++ {
		candidate = id + "-copy-" + strconv.Itoa(n)
	}
	return candidate
}
