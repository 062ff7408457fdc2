// Package app provides the application context and dependency management
// for the modeldesk CLI. It centralizes configuration, dependency injection,
// and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/modeldesk"
	"github.com/agentstation/modeldesk/internal/localstore"
	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/presets"
	"github.com/agentstation/modeldesk/pkg/records"
)

// App represents the modeldesk application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Workspace (lazy-initialized, singleton)
	mu        sync.RWMutex
	workspace *modeldesk.Workspace
	presets   *presets.Manager
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Workspace returns the editing session, opening it from the session file
// on first use. This is thread-safe and ensures only one instance is created.
func (a *App) Workspace() (*modeldesk.Workspace, error) {
	a.mu.RLock()
	if a.workspace != nil {
		ws := a.workspace
		a.mu.RUnlock()
		return ws, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.workspace != nil {
		return a.workspace, nil
	}

	ws, err := modeldesk.Open(a.config.SessionPath,
		modeldesk.WithHistoryCapacity(a.config.HistoryCapacity),
		modeldesk.WithLogger(a.logger),
	)
	if err != nil {
		return nil, errors.WrapResource("open", "workspace", a.config.SessionPath, err)
	}

	a.watch(ws)
	a.workspace = ws
	return ws, nil
}

// watch logs record changes at debug level.
func (a *App) watch(ws *modeldesk.Workspace) {
	logger := a.logger
	ws.OnRecordAdded(func(key string, r records.Record) {
		logger.Debug().Str("key", key).Str("name", r.DisplayName()).Msg("Record added")
	})
	ws.OnRecordUpdated(func(key string, _, r records.Record) {
		logger.Debug().Str("key", key).Str("name", r.DisplayName()).Msg("Record updated")
	})
	ws.OnRecordRemoved(func(key string, _ records.Record) {
		logger.Debug().Str("key", key).Msg("Record removed")
	})
}

// SaveWorkspace writes the workspace back to the session file. It is a
// no-op when the workspace was never opened.
func (a *App) SaveWorkspace() error {
	a.mu.RLock()
	ws := a.workspace
	a.mu.RUnlock()

	if ws == nil {
		return nil
	}
	return ws.SaveSession(a.config.SessionPath)
}

// Presets returns the preset manager backed by the local store.
func (a *App) Presets() *presets.Manager {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.presets == nil {
		a.presets = presets.NewManager(localstore.Open(a.config.StorePath))
	}
	return a.presets
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithWorkspace sets a custom workspace (useful for testing).
func WithWorkspace(ws *modeldesk.Workspace) Option {
	return func(a *App) error {
		a.workspace = ws
		return nil
	}
}
