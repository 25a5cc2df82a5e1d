package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/sdactl/internal/provisioning"
)

// RunFunc executes a pipeline, reporting to observer.
type RunFunc func(ctx context.Context, observer provisioning.Observer) (*provisioning.Report, error)

// Run wraps a pipeline run with the dashboard. Quitting the dashboard cancels
// ctx for the run and waits for it to return.
func Run(ctx context.Context, title string, total int, run RunFunc) (*provisioning.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(title, total), tea.WithContext(ctx))

	type result struct {
		report *provisioning.Report
		err    error
	}
	done := make(chan result, 1)

	go func() {
		report, err := run(ctx, NewObserver(p.Send))
		done <- result{report, err}
		p.Send(DoneMsg{Report: report, Err: err})
	}()

	finalModel, tuiErr := p.Run()

	// The run may still be in flight when the user quit.
	cancel()
	res := <-done

	if tuiErr != nil && res.err == nil {
		if fm, ok := finalModel.(Model); !ok || !fm.Interrupted {
			return res.report, fmt.Errorf("TUI error: %w", tuiErr)
		}
	}
	return res.report, res.err
}
