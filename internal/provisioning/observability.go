package provisioning

import (
	"maps"
	"time"

	"github.com/go-logr/logr"
)

// Observer receives structured events while a pipeline runs.
type Observer interface {
	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured pipeline event.
type Event struct {
	Type      EventType         // Type of event
	Pipeline  string            // Pipeline name (e.g., "fabric", "policy")
	Stage     string            // Stage title if applicable
	Message   string            // Human-readable message
	Resource  string            // Item subject if applicable
	Err       error             // Cause for failure events
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of pipeline event.
type EventType string

const (
	// EventPipelineStarted indicates a pipeline run has started.
	EventPipelineStarted EventType = "pipeline.started"
	// EventPipelineCompleted indicates the pipeline reached its last stage.
	EventPipelineCompleted EventType = "pipeline.completed"
	// EventPipelineFailed indicates the pipeline stopped early.
	EventPipelineFailed EventType = "pipeline.failed"

	// EventStageStarted indicates a stage has started.
	EventStageStarted EventType = "stage.started"
	// EventStageCompleted indicates all items of a stage were attempted.
	EventStageCompleted EventType = "stage.completed"

	// EventResourceCreated indicates the controller accepted an item.
	EventResourceCreated EventType = "resource.created"
	// EventResourceFailed indicates the controller rejected an item or the call failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceSkipped indicates an item was not attempted.
	EventResourceSkipped EventType = "resource.skipped"

	// EventWaiting indicates the pipeline is pausing before a dependent call.
	EventWaiting EventType = "waiting"
)

// LogObserver forwards events to a logr.Logger.
type LogObserver struct {
	logger        logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates an observer that writes every event as a log line.
func NewLogObserver(logger logr.Logger) *LogObserver {
	return &LogObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Event implements Observer interface.
func (o *LogObserver) Event(event Event) {
	kv := []any{"event", string(event.Type)}
	if event.Pipeline != "" {
		kv = append(kv, "pipeline", event.Pipeline)
	}
	if event.Stage != "" {
		kv = append(kv, "stage", event.Stage)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	for k, v := range mergeFields(o.contextFields, event.Fields) {
		kv = append(kv, k, v)
	}

	if event.Err != nil {
		o.logger.Error(event.Err, event.Message, kv...)
		return
	}

	// Item level events are only interesting with -v.
	switch event.Type {
	case EventResourceCreated, EventResourceSkipped, EventWaiting:
		o.logger.V(1).Info(event.Message, kv...)
	default:
		o.logger.Info(event.Message, kv...)
	}
}

// WithFields implements Observer interface.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	return &LogObserver{
		logger:        o.logger,
		contextFields: mergeFields(o.contextFields, fields),
	}
}

// Observers fans events out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	var out multiObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) Event(event Event) {
	for _, o := range m {
		o.Event(event)
	}
}

func (m multiObserver) WithFields(fields map[string]string) Observer {
	out := make(multiObserver, len(m))
	for i, o := range m {
		out[i] = o.WithFields(fields)
	}
	return out
}

// NopObserver discards all events.
type NopObserver struct{}

// Event implements Observer interface.
func (NopObserver) Event(Event) {}

// WithFields implements Observer interface.
func (n NopObserver) WithFields(map[string]string) Observer { return n }

func mergeFields(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}

// Helper functions for common events

// LogStageStart logs a stage start event.
func LogStageStart(observer Observer, pipeline, stage string) {
	observer.Event(Event{
		Type:     EventStageStarted,
		Pipeline: pipeline,
		Stage:    stage,
		Message:  stage,
	})
}

// LogResourceCreated logs an item the controller accepted.
func LogResourceCreated(observer Observer, pipeline, stage, message, subject string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Pipeline: pipeline,
		Stage:    stage,
		Resource: subject,
		Message:  message,
	})
}

// LogResourceFailed logs an item that could not be created.
func LogResourceFailed(observer Observer, pipeline, stage, subject string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Pipeline: pipeline,
		Stage:    stage,
		Resource: subject,
		Message:  "Failed to create " + subject,
		Err:      err,
	})
}

// LogResourceSkipped logs an item that was not attempted.
func LogResourceSkipped(observer Observer, pipeline, stage, subject, reason string) {
	observer.Event(Event{
		Type:     EventResourceSkipped,
		Pipeline: pipeline,
		Stage:    stage,
		Resource: subject,
		Message:  "Skipped " + subject + ": " + reason,
	})
}
