// Package logging builds the structured logger shared by the CLI, the REST
// clients and the pipeline log observer.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New returns a logger writing key/value lines to w. Verbosity 0 logs info
// and errors; 1 adds per-item and per-request detail.
func New(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(w, "%s %s\n", prefix, args)
			return
		}
		_, _ = fmt.Fprintln(w, args)
	}, funcr.Options{
		LogTimestamp:    true,
		TimestampFormat: time.RFC3339,
		Verbosity:       verbosity,
	})
}
