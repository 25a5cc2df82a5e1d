package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/sdactl/internal/metrics"
	"github.com/imamik/sdactl/internal/platform/rest"
)

// Runner executes operations for one pipeline run and accumulates a Report.
// A Runner is not safe for concurrent use; stages run strictly in order.
type Runner struct {
	pipeline  string
	transport rest.Transport
	session   rest.Session
	observer  Observer
	waiter    Waiter
	report    *Report
}

// NewRunner starts a pipeline run. A nil observer or waiter is replaced by
// NopObserver and NoWait.
func NewRunner(pipeline string, t rest.Transport, sess rest.Session, obs Observer, w Waiter) *Runner {
	if obs == nil {
		obs = NopObserver{}
	}
	if w == nil {
		w = NoWait{}
	}
	return &Runner{
		pipeline:  pipeline,
		transport: t,
		session:   sess,
		observer:  obs.WithFields(map[string]string{"pipeline": pipeline}),
		waiter:    w,
		report:    &Report{Pipeline: pipeline, Started: time.Now()},
	}
}

// Report returns the report accumulated so far.
func (r *Runner) Report() *Report {
	return r.report
}

// Start announces the run.
func (r *Runner) Start(title string) {
	r.observer.Event(Event{
		Type:     EventPipelineStarted,
		Pipeline: r.pipeline,
		Message:  title,
	})
}

// Begin opens a new stage and announces it.
func (r *Runner) Begin(name, title string) *StageResult {
	stage := &StageResult{Name: name, Title: title}
	r.report.Stages = append(r.report.Stages, stage)
	LogStageStart(r.observer, r.pipeline, title)
	return stage
}

// Track adds a stage that is reported under the current stage header, such as
// IP pools created alongside their virtual networks.
func (r *Runner) Track(name, title string) *StageResult {
	stage := &StageResult{Name: name, Title: title}
	r.report.Stages = append(r.report.Stages, stage)
	return stage
}

// End closes a stage.
func (r *Runner) End(stage *StageResult) {
	msg := ""
	if stage.Failed() > 0 {
		msg = fmt.Sprintf("%d/%d succeeded", len(stage.Succeeded), stage.Attempted)
	}
	r.observer.Event(Event{
		Type:     EventStageCompleted,
		Pipeline: r.pipeline,
		Stage:    stage.Title,
		Message:  msg,
		Fields: map[string]string{
			"attempted": fmt.Sprint(stage.Attempted),
			"failed":    fmt.Sprint(stage.Failed()),
		},
	})
}

// Apply executes op, records its outcome under stage and reports it.
func (r *Runner) Apply(ctx context.Context, stage *StageResult, op rest.Operation) rest.Result {
	stage.Attempted++
	res := rest.Execute(ctx, r.transport, r.session, op)
	obs := r.observer.WithFields(map[string]string{"kind": op.Kind})

	if res.OK {
		stage.Succeeded = append(stage.Succeeded, op.Subject)
		metrics.RecordItem(r.pipeline, stage.Name, metrics.ResultSuccess)
		LogResourceCreated(obs, r.pipeline, stage.Title, op.Success, op.Subject)
		return res
	}

	stage.Failures = append(stage.Failures, ItemFailure{Subject: op.Subject, Err: res.Err})
	metrics.RecordItem(r.pipeline, stage.Name, metrics.ResultFailure)
	LogResourceFailed(obs, r.pipeline, stage.Title, op.Subject, res.Err)
	return res
}

// Skip records an item that was not attempted.
func (r *Runner) Skip(stage *StageResult, subject, reason string) {
	stage.Skipped = append(stage.Skipped, subject)
	metrics.RecordItem(r.pipeline, stage.Name, metrics.ResultSkipped)
	LogResourceSkipped(r.observer, r.pipeline, stage.Title, subject, reason)
}

// Wait pauses at point using the configured Waiter.
func (r *Runner) Wait(ctx context.Context, point WaitPoint) error {
	r.observer.Event(Event{
		Type:     EventWaiting,
		Pipeline: r.pipeline,
		Message:  "Waiting for controller",
		Fields:   map[string]string{"point": string(point)},
	})
	if err := r.waiter.Wait(ctx, point); err != nil {
		return fmt.Errorf("wait %s: %w", point, err)
	}
	return nil
}

// Complete marks the run successful. note is printed under the summary line.
func (r *Runner) Complete(title, note string) *Report {
	r.report.OK = true
	r.report.Finished = time.Now()
	metrics.RecordRun(r.pipeline, true)

	event := Event{
		Type:     EventPipelineCompleted,
		Pipeline: r.pipeline,
		Message:  title,
		Fields: map[string]string{
			"attempted": fmt.Sprint(r.report.Attempted()),
			"failed":    fmt.Sprint(len(r.report.Failures())),
		},
	}
	if note != "" {
		event.Fields["note"] = note
	}
	r.observer.Event(event)
	return r.report
}

// Fail ends the run early with err.
func (r *Runner) Fail(message string, err error) (*Report, error) {
	r.report.OK = false
	r.report.Err = err
	r.report.Finished = time.Now()
	metrics.RecordRun(r.pipeline, false)

	r.observer.Event(Event{
		Type:     EventPipelineFailed,
		Pipeline: r.pipeline,
		Message:  message,
		Err:      err,
	})
	return r.report, err
}

// FailedReport returns a report for a run that never started, such as one
// whose document could not be loaded.
func FailedReport(pipeline string, obs Observer, err error) (*Report, error) {
	r := NewRunner(pipeline, nil, rest.Session{}, obs, nil)
	return r.Fail("Deployment aborted", err)
}
