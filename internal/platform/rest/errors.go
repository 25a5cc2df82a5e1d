package rest

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication is returned when the login exchange fails (bad credentials,
	// unreachable host, or a response without a token).
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotAuthenticated is returned when an operation is attempted with a session
	// that never completed a login. No request is sent in that case.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTransport marks network errors, timeouts and non-2xx responses.
	ErrTransport = errors.New("transport failure")
)

// Error describes a failed request. Body carries the raw response text when the
// controller returned one.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports every request error as ErrTransport.
func (e *Error) Is(target error) bool {
	return target == ErrTransport
}

// ResponseBody returns the raw response text of a failed request, if any.
func ResponseBody(err error) string {
	var reqErr *Error
	if errors.As(err, &reqErr) {
		return reqErr.Body
	}
	return ""
}
