// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/modeldesk"
	"github.com/agentstation/modeldesk/pkg/presets"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/modeldesk/app implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Workspace returns the editing session, loading it from the session
	// file on first use.
	Workspace() (*modeldesk.Workspace, error)

	// SaveWorkspace persists the editing session so the next invocation
	// (and its undo history) picks up where this one left off.
	SaveWorkspace() error

	// Presets returns the preset manager backed by the local store.
	Presets() *presets.Manager

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
