// Package constants provides shared constants used throughout the modeldesk
// codebase: history limits, file permissions, storage keys and default
// paths that should stay consistent between the library and the CLI.
package constants

import "time"

// History constants
const (
	// HistoryCapacity is the number of undo snapshots kept per workspace
	HistoryCapacity = 50
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for session and store files (rw-------)
	SecureFilePermissions = 0600
)

// Storage constants
const (
	// PresetsKey is the fixed local-store key holding the preset blob
	PresetsKey = "modeldesk.presets"

	// SessionVersion is the on-disk session format version
	SessionVersion = 1
)

// Path constants
const (
	// DefaultHomeDir is the directory under $HOME holding modeldesk state
	DefaultHomeDir = ".modeldesk"

	// DefaultSessionFile is the session file name inside DefaultHomeDir
	DefaultSessionFile = "session.json"

	// DefaultStoreFile is the local store file name inside DefaultHomeDir
	DefaultStoreFile = "store.json"

	// ConfigFileName is the config file base name searched in $HOME and "."
	ConfigFileName = ".modeldesk"
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"

	// JSONIndent is the indentation used for exported documents
	JSONIndent = "  "
)

// ShutdownTimeout bounds cleanup after a failed command
const ShutdownTimeout = 5 * time.Second
