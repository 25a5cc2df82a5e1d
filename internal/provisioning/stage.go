package provisioning

import (
	"encoding/json"
	"time"
)

// ItemFailure records one item the controller did not accept.
type ItemFailure struct {
	Subject string
	Err     error
}

// StageResult is the outcome of one stage of a pipeline.
type StageResult struct {
	Name      string
	Title     string
	Attempted int
	Succeeded []string
	Skipped   []string
	Failures  []ItemFailure
}

// Failed returns the number of failed items.
func (s *StageResult) Failed() int {
	return len(s.Failures)
}

// OK reports whether every attempted item succeeded.
func (s *StageResult) OK() bool {
	return len(s.Failures) == 0
}

// Report is the outcome of a whole pipeline run.
//
// OK is true when the document loaded and every prerequisite step succeeded.
// Individual item failures do not clear it; inspect Failures for those.
type Report struct {
	Pipeline string
	Stages   []*StageResult
	OK       bool
	Err      error
	Started  time.Time
	Finished time.Time
}

// Stage returns the named stage, or nil if the run never reached it.
func (r *Report) Stage(name string) *StageResult {
	for _, s := range r.Stages {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Attempted returns the number of items sent to the controller.
func (r *Report) Attempted() int {
	n := 0
	for _, s := range r.Stages {
		n += s.Attempted
	}
	return n
}

// Succeeded returns the number of accepted items.
func (r *Report) Succeeded() int {
	n := 0
	for _, s := range r.Stages {
		n += len(s.Succeeded)
	}
	return n
}

// Failures returns every item failure in stage order.
func (r *Report) Failures() []ItemFailure {
	var out []ItemFailure
	for _, s := range r.Stages {
		out = append(out, s.Failures...)
	}
	return out
}

// Clean reports whether the run completed with no item failures.
func (r *Report) Clean() bool {
	return r.OK && len(r.Failures()) == 0
}

type failureJSON struct {
	Subject string `json:"subject"`
	Error   string `json:"error"`
}

type stageJSON struct {
	Name      string        `json:"name"`
	Title     string        `json:"title"`
	Attempted int           `json:"attempted"`
	Succeeded []string      `json:"succeeded"`
	Skipped   []string      `json:"skipped,omitempty"`
	Failures  []failureJSON `json:"failures,omitempty"`
}

type reportJSON struct {
	Pipeline string      `json:"pipeline"`
	OK       bool        `json:"ok"`
	Error    string      `json:"error,omitempty"`
	Started  time.Time   `json:"started"`
	Finished time.Time   `json:"finished"`
	Stages   []stageJSON `json:"stages"`
}

// MarshalJSON encodes the report with errors rendered as strings.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		Pipeline: r.Pipeline,
		OK:       r.OK,
		Started:  r.Started,
		Finished: r.Finished,
		Stages:   make([]stageJSON, 0, len(r.Stages)),
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	for _, s := range r.Stages {
		sj := stageJSON{
			Name:      s.Name,
			Title:     s.Title,
			Attempted: s.Attempted,
			Succeeded: s.Succeeded,
			Skipped:   s.Skipped,
		}
		if sj.Succeeded == nil {
			sj.Succeeded = []string{}
		}
		for _, f := range s.Failures {
			fj := failureJSON{Subject: f.Subject}
			if f.Err != nil {
				fj.Error = f.Err.Error()
			}
			sj.Failures = append(sj.Failures, fj)
		}
		out.Stages = append(out.Stages, sj)
	}
	return json.Marshal(out)
}
