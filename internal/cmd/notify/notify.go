// Package notify provides a unified API for user-facing alerts in the CLI.
package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/modeldesk/internal/cmd/alerts"
	"github.com/agentstation/modeldesk/internal/cmd/globals"
	"github.com/agentstation/modeldesk/internal/cmd/output"
)

// Notifier is the main public API for sending alerts.
type Notifier struct {
	alertWriter alerts.Writer
	config      Config
}

// Config controls notification behavior.
type Config struct {
	OutputFormat string    // "table", "json", "yaml"
	Quiet        bool      // Suppress success and info alerts
	AlertWriter  io.Writer // Where to write alerts (default: stderr)
	UseColor     bool      // Whether to use colored output
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		OutputFormat: "auto",
		AlertWriter:  os.Stderr,
		UseColor:     true,
	}
}

// New creates a new Notifier with the given configuration.
// A nil AlertWriter discards every alert.
func New(config Config) *Notifier {
	if config.AlertWriter == nil {
		return &Notifier{alertWriter: alerts.DiscardWriter, config: config}
	}
	format := detectOutputFormat(config.OutputFormat)
	fw := alerts.NewFormatWriter(config.AlertWriter, format)
	fw.WithConfig(alerts.WriterConfig{
		ShowDetails: true,
		UseColor:    config.UseColor && isTerminal(config.AlertWriter),
	})
	return &Notifier{
		alertWriter: fw,
		config:      config,
	}
}

// NewFromCommand creates a Notifier configured from a Cobra command. Alerts
// go to the command's error stream.
func NewFromCommand(cmd *cobra.Command) *Notifier {
	flags := globals.Parse(cmd)

	config := DefaultConfig()
	config.OutputFormat = flags.Format
	config.Quiet = flags.Quiet
	config.UseColor = !flags.NoColor
	config.AlertWriter = cmd.ErrOrStderr()
	return New(config)
}

// Alert sends an alert notification. Success and info alerts are dropped in
// quiet mode.
func (n *Notifier) Alert(alert *alerts.Alert) error {
	if n.config.Quiet && (alert.Level == alerts.LevelSuccess || alert.Level == alerts.LevelInfo) {
		return nil
	}
	if err := n.alertWriter.WriteAlert(alert); err != nil {
		return fmt.Errorf("failed to write alert: %w", err)
	}
	return nil
}

// Success sends a success alert.
func (n *Notifier) Success(message string, details ...string) error {
	return n.Alert(alerts.NewSuccess(message).WithDetails(details...))
}

// Info sends an info alert.
func (n *Notifier) Info(message string, details ...string) error {
	return n.Alert(alerts.NewInfo(message).WithDetails(details...))
}

// Warning sends a warning alert.
func (n *Notifier) Warning(message string, details ...string) error {
	return n.Alert(alerts.NewWarning(message).WithDetails(details...))
}

// Error sends an error alert carrying err.
func (n *Notifier) Error(message string, err error) error {
	return n.Alert(alerts.NewError(message).WithError(err))
}

// detectOutputFormat determines the alert format from a string.
func detectOutputFormat(formatStr string) output.Format {
	if formatStr == "" || formatStr == "auto" {
		return output.FormatTable
	}
	return output.Format(strings.ToLower(formatStr))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
