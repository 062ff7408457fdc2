package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/modeldesk"
	"github.com/agentstation/modeldesk/pkg/presets"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	WorkspaceFunc     func() (*modeldesk.Workspace, error)
	SaveWorkspaceFunc func() error
	PresetsFunc       func() *presets.Manager
	LoggerFunc        func() *zerolog.Logger
	OutputFormatFunc  func() string
	VersionFunc       func() string
	CommitFunc        func() string
	DateFunc          func() string
	BuiltByFunc       func() string

	// Saves counts SaveWorkspace calls.
	Saves int
}

// Workspace returns a workspace using the mock function or an empty one.
func (m *Mock) Workspace() (*modeldesk.Workspace, error) {
	if m.WorkspaceFunc != nil {
		return m.WorkspaceFunc()
	}
	return modeldesk.New(modeldesk.WithLogger(m.Logger()))
}

// SaveWorkspace records the call and runs the mock function if set.
func (m *Mock) SaveWorkspace() error {
	m.Saves++
	if m.SaveWorkspaceFunc != nil {
		return m.SaveWorkspaceFunc()
	}
	return nil
}

// Presets returns a manager using the mock function or nil.
func (m *Mock) Presets() *presets.Manager {
	if m.PresetsFunc != nil {
		return m.PresetsFunc()
	}
	return nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
