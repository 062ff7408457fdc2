package alerts

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentstation/modeldesk/internal/cmd/emoji"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a potential issue or important notice.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the symbol shown in front of an alert.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return emoji.Error
	case LevelWarning:
		return emoji.Warning
	case LevelInfo:
		return emoji.Info
	case LevelSuccess:
		return emoji.Success
	default:
		return "?"
	}
}

// Style returns the terminal style of the alert level.
func (l Level) Style() lipgloss.Style {
	switch l {
	case LevelError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	case LevelWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	case LevelInfo:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case LevelSuccess:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	default:
		return lipgloss.NewStyle()
	}
}
