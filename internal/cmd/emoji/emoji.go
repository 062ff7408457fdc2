// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all commands.
package emoji

const (
	// Success represents successful completion of an operation.
	// Used for: imports, exports, saved edits.
	Success = "✓"

	// Error represents failures.
	// Used for: parse errors, unknown records, rejected values.
	Error = "✗"

	// Warning represents non-critical issues.
	// Used for: nothing to undo, empty workspaces.
	Warning = "!"

	// Info represents neutral status messages.
	Info = "i"
)
