package rest

import (
	"context"
	"encoding/json"
	"errors"
)

// Operation is a fully shaped request for one remote resource. Builders in the
// controller packages produce Operations without side effects.
type Operation struct {
	// Kind names the resource kind, e.g. "fabric-site" or "sgt".
	Kind string

	Method  string
	Path    string
	Payload any

	// Subject is the identifying attribute of the resource (device IP, VN name).
	Subject string

	// Success is the confirmation line reported when the call succeeds.
	Success string
}

// Result is the outcome of executing an Operation.
type Result struct {
	OK      bool
	Payload json.RawMessage
	// Empty marks a success without content.
	Empty bool
	Err   error
}

// Execute sends op with sess. Success is decided solely by the absence of a
// transport failure; the payload is not inspected.
func Execute(ctx context.Context, t Transport, sess Session, op Operation) Result {
	if !sess.Authenticated() {
		return Result{Err: ErrNotAuthenticated}
	}

	resp, err := t.Send(ctx, sess, op.Method, op.Path, op.Payload)
	if err != nil {
		return Result{Err: err}
	}

	return Result{OK: true, Payload: resp.Body, Empty: resp.Empty}
}

// IsNotAuthenticated reports whether err was caused by a missing login.
func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}
