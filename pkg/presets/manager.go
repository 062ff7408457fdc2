package presets

import (
	"github.com/agentstation/modeldesk/internal/localstore"
	"github.com/agentstation/modeldesk/pkg/constants"
	"github.com/agentstation/modeldesk/pkg/errors"
)

// Manager loads and saves presets in a local store under
// constants.PresetsKey.
type Manager struct {
	store *localstore.Store
	key   string
}

// NewManager creates a manager over store.
func NewManager(store *localstore.Store) *Manager {
	return &Manager{store: store, key: constants.PresetsKey}
}

// Load returns the stored presets, or Defaults when none were saved.
func (m *Manager) Load() (*Presets, error) {
	blob, ok, err := m.store.Get(m.key)
	if err != nil {
		return nil, errors.WrapResource("load", "presets", "", err)
	}
	if !ok {
		return Defaults(), nil
	}
	p, err := Parse([]byte(blob))
	if err != nil {
		return nil, errors.WrapResource("load", "presets", "", err)
	}
	return p, nil
}

// Save writes p to the store.
func (m *Manager) Save(p *Presets) error {
	data, err := p.JSON()
	if err != nil {
		return errors.WrapResource("save", "presets", "", err)
	}
	if err := m.store.Set(m.key, string(data)); err != nil {
		return errors.WrapResource("save", "presets", "", err)
	}
	return nil
}

// Import replaces the stored presets with a preset document. Malformed
// documents return a parse error and leave the store unchanged.
func (m *Manager) Import(data []byte) (*Presets, error) {
	p, err := Parse(data)
	if err != nil {
		return nil, errors.WrapResource("import", "presets", "", err)
	}
	if err := m.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Export returns the current presets as a JSON document.
func (m *Manager) Export() ([]byte, error) {
	p, err := m.Load()
	if err != nil {
		return nil, err
	}
	return p.JSON()
}

// Update loads the presets, applies fn and saves the result.
func (m *Manager) Update(fn func(*Presets) error) (*Presets, error) {
	p, err := m.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := m.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Reset removes the stored presets so Load falls back to Defaults.
func (m *Manager) Reset() error {
	if err := m.store.Remove(m.key); err != nil {
		return errors.WrapResource("reset", "presets", "", err)
	}
	return nil
}
