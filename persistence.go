package modeldesk

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/agentstation/modeldesk/internal/localstore"
	"github.com/agentstation/modeldesk/pkg/constants"
	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/history"
	"github.com/agentstation/modeldesk/pkg/reconcile"
	"github.com/agentstation/modeldesk/pkg/records"
)

// session is the on-disk form of a workspace.
type session struct {
	Version int                       `json:"version"`
	SavedAt time.Time                 `json:"saved_at"`
	Entries []sessionEntry            `json:"entries"`
	Raw     map[string]map[string]any `json:"raw"`
	History [][]sessionEntry          `json:"history"`
}

type sessionEntry struct {
	Key    string         `json:"key"`
	Record records.Record `json:"record"`
}

func toSessionEntries(entries []Entry) []sessionEntry {
	out := make([]sessionEntry, len(entries))
	for i, e := range entries {
		out[i] = sessionEntry{Key: e.Key, Record: e.Record}
	}
	return out
}

func fromSessionEntries(entries []sessionEntry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Key: e.Key, Record: e.Record}
	}
	return out
}

// SaveSession writes the records, raw copies and undo history to path so a
// later LoadSession can resume editing, undo included.
func (w *Workspace) SaveSession(path string) error {
	w.mu.RLock()
	s := session{
		Version: constants.SessionVersion,
		SavedAt: time.Now().UTC(),
		Entries: toSessionEntries(w.entries),
		Raw:     w.raw.Snapshot(),
	}
	for _, snap := range w.history.Entries() {
		s.History = append(s.History, toSessionEntries(snap))
	}
	w.mu.RUnlock()

	data, err := json.MarshalIndent(s, "", constants.JSONIndent)
	if err != nil {
		return errors.WrapResource("save", "session", path, err)
	}
	if err := localstore.WriteFileAtomic(path, append(data, '\n'), constants.SecureFilePermissions); err != nil {
		return errors.WrapResource("save", "session", path, err)
	}

	w.config.logger.Debug().
		Str("path", path).
		Int("records", len(s.Entries)).
		Int("history", len(s.History)).
		Msg("Saved session")
	return nil
}

// LoadSession replaces the workspace state with the session stored at path.
// A missing file returns a NotFoundError and leaves the workspace unchanged.
func (w *Workspace) LoadSession(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // session path comes from user configuration
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewNotFoundError("session", path)
		}
		return errors.WrapIO("read", path, err)
	}

	var s session
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&s); err != nil {
		return errors.WrapResource("load", "session", path, errors.WrapParse("json", path, err))
	}
	if s.Version != constants.SessionVersion {
		return &errors.ConfigError{
			Component: "session",
			Message:   "unsupported session version",
		}
	}

	stack := history.New(w.history.Cap(), cloneEntries)
	for _, snap := range s.History {
		stack.Push(fromSessionEntries(snap))
	}
	entries := fromSessionEntries(s.Entries)
	if entries == nil {
		entries = []Entry{}
	}

	w.mu.Lock()
	before := w.entries
	w.entries = entries
	w.raw = reconcile.RestoreRawStore(s.Raw)
	w.history = stack
	w.mu.Unlock()

	w.config.logger.Debug().
		Str("path", path).
		Int("records", len(entries)).
		Int("history", stack.Len()).
		Msg("Loaded session")
	w.hooks.trigger(before, entries)
	return nil
}

// Open creates a workspace and resumes the session at path when one exists.
func Open(path string, opts ...Option) (*Workspace, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.LoadSession(path); err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	return w, nil
}
