package provisioning

import (
	"context"
	"time"
)

// WaitPoint identifies where in a pipeline a pause is requested.
type WaitPoint string

const (
	// WaitAfterSite follows fabric site creation.
	WaitAfterSite WaitPoint = "after-site"
	// WaitBetweenItems follows each item of a paced stage.
	WaitBetweenItems WaitPoint = "between-items"
)

// Waiter decides how long a pipeline settles before the next dependent call.
// Implementations may sleep, poll the controller, or do nothing.
type Waiter interface {
	Wait(ctx context.Context, point WaitPoint) error
}

// WaitFunc adapts a function to the Waiter interface.
type WaitFunc func(ctx context.Context, point WaitPoint) error

// Wait calls f.
func (f WaitFunc) Wait(ctx context.Context, point WaitPoint) error {
	return f(ctx, point)
}

// FixedDelay sleeps a fixed duration per wait point. It does not confirm that
// the controller finished the previous request.
type FixedDelay struct {
	AfterSite    time.Duration
	BetweenItems time.Duration
}

// Wait sleeps for the duration configured for point, or until ctx is done.
func (f FixedDelay) Wait(ctx context.Context, point WaitPoint) error {
	var d time.Duration
	switch point {
	case WaitAfterSite:
		d = f.AfterSite
	case WaitBetweenItems:
		d = f.BetweenItems
	}
	return sleep(ctx, d)
}

// NoWait never pauses.
type NoWait struct{}

// Wait returns immediately unless ctx is already done.
func (NoWait) Wait(ctx context.Context, _ WaitPoint) error {
	return ctx.Err()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
