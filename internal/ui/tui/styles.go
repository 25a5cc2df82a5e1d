package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/sdactl/internal/provisioning"
)

var (
	colorOK      = lipgloss.Color("#22c55e")
	colorFail    = lipgloss.Color("#ef4444")
	colorWait    = lipgloss.Color("#eab308")
	colorHeading = lipgloss.Color("#3b82f6")
	colorMuted   = lipgloss.Color("#6b7280")

	headerStyle  = lipgloss.NewStyle().Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHeading).MarginTop(1)
	okStyle      = lipgloss.NewStyle().Foreground(colorOK)
	failStyle    = lipgloss.NewStyle().Foreground(colorFail)
	waitStyle    = lipgloss.NewStyle().Foreground(colorWait)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	footerStyle  = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)

// Item and stage marks.
const (
	markCreated = "✓"
	markFailed  = "✗"
	markSkipped = "-"
	markPartial = "!"
	markPending = "·"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// itemMark returns how a finished item is drawn.
func itemMark(t provisioning.EventType) (string, lipgloss.Style) {
	switch t {
	case provisioning.EventResourceFailed:
		return markFailed, failStyle
	case provisioning.EventResourceSkipped:
		return markSkipped, mutedStyle
	default:
		return markCreated, okStyle
	}
}

// stageMark returns how a stage line is drawn.
func stageMark(s StageView, frame int) (string, lipgloss.Style) {
	switch {
	case s.Active:
		return currentSpinner(frame), headerStyle
	case s.Failed > 0:
		return markPartial, waitStyle
	case s.Done:
		return markCreated, okStyle
	default:
		return markPending, mutedStyle
	}
}
