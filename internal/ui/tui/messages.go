// Package tui provides a Bubble Tea dashboard for deployment runs.
package tui

import "github.com/imamik/sdactl/internal/provisioning"

// EventMsg carries one pipeline event into the model.
type EventMsg struct {
	Event provisioning.Event
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// DoneMsg signals that the run has returned.
type DoneMsg struct {
	Report *provisioning.Report
	Err    error
}
