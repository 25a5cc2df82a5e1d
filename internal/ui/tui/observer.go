package tui

import (
	"maps"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/sdactl/internal/provisioning"
)

// Observer forwards pipeline events to a running program.
type Observer struct {
	send   func(tea.Msg)
	fields map[string]string
}

// NewObserver returns an Observer delivering events through send, usually
// (*tea.Program).Send.
func NewObserver(send func(tea.Msg)) *Observer {
	return &Observer{send: send, fields: map[string]string{}}
}

// Event implements provisioning.Observer.
func (o *Observer) Event(event provisioning.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if len(o.fields) > 0 {
		merged := maps.Clone(o.fields)
		maps.Copy(merged, event.Fields)
		event.Fields = merged
	}
	o.send(EventMsg{Event: event})
}

// WithFields implements provisioning.Observer.
func (o *Observer) WithFields(fields map[string]string) provisioning.Observer {
	merged := maps.Clone(o.fields)
	maps.Copy(merged, fields)
	return &Observer{send: o.send, fields: merged}
}
