package modeldesk

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/modeldesk/pkg/constants"
	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/logging"
)

// Option is a function that configures a Workspace.
type Option func(*config) error

// IDGenerator returns a fresh record key.
type IDGenerator func() string

type config struct {
	historyCapacity int
	logger          *zerolog.Logger
	newID           IDGenerator
}

func defaultConfig() *config {
	return &config{
		historyCapacity: constants.HistoryCapacity,
		logger:          logging.Default(),
		newID:           uuid.NewString,
	}
}

// WithHistoryCapacity sets how many undo snapshots are kept.
func WithHistoryCapacity(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewValidationError("history_capacity", n, "must be at least 1")
		}
		c.historyCapacity = n
		return nil
	}
}

// WithLogger configures the logger used for workspace events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithIDGenerator replaces the UUID generator used for keys of records
// whose id is empty or already taken.
func WithIDGenerator(fn IDGenerator) Option {
	return func(c *config) error {
		if fn == nil {
			return errors.NewValidationError("id_generator", nil, "must not be nil")
		}
		c.newID = fn
		return nil
	}
}
