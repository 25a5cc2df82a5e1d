// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/sdactl/internal/config"
	"github.com/imamik/sdactl/internal/logging"
	"github.com/imamik/sdactl/internal/platform/ise"
	"github.com/imamik/sdactl/internal/platform/rest"
	"github.com/imamik/sdactl/internal/provisioning"
	"github.com/imamik/sdactl/internal/ui/tui"
)

// GlobalOptions are the flags shared by every command.
type GlobalOptions struct {
	ProfilePath string
	Verbose     bool
	ReportPath  string
	MetricsFile string
	Plain       bool
}

// ConnectionOptions identify one controller and its credentials.
type ConnectionOptions struct {
	Host      string
	Username  string
	Password  string
	VerifyTLS bool
}

// Output and factory variables - can be replaced in tests for dependency injection.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// loadTimeouts reads call timeouts and settle pauses from the environment.
	loadTimeouts = config.LoadTimeouts

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// isTerminalOutput reports whether stdout can host the dashboard.
	isTerminalOutput = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd())
	}

	// runDashboard runs a pipeline under the Bubble Tea dashboard.
	runDashboard = tui.Run
)

func newLogger(g *GlobalOptions) logr.Logger {
	verbosity := 0
	if g.Verbose {
		verbosity = 1
	}
	return logging.New(stderr, verbosity)
}

func newClient(ctrl config.Controller, controller string, t *config.Timeouts, logger logr.Logger) *rest.Client {
	return rest.NewClient(rest.Config{
		Host:           ctrl.Host,
		VerifyTLS:      ctrl.VerifyTLS,
		LoginTimeout:   t.Login,
		RequestTimeout: requestTimeout(controller, t),
		Controller:     controller,
		Logger:         logger.WithName(controller),
	})
}

func requestTimeout(controller string, t *config.Timeouts) time.Duration {
	if controller == ise.Controller {
		return t.PolicyRequest
	}
	return t.Request
}

// newObserver prints progress to stdout and, with -v, mirrors every event to the log.
func newObserver(g *GlobalOptions, logger logr.Logger) provisioning.Observer {
	console := provisioning.NewConsoleObserver(stdout)
	if !g.Verbose {
		return console
	}
	return provisioning.Observers(console, provisioning.NewLogObserver(logger))
}

// runPipeline runs a deployment under the dashboard on a terminal, or with
// line-oriented console output otherwise. -v and --plain force console output.
func runPipeline(ctx context.Context, g *GlobalOptions, logger logr.Logger, title string, total int, run tui.RunFunc) (*provisioning.Report, error) {
	if !g.Plain && !g.Verbose && isTerminalOutput() {
		return runDashboard(ctx, title, total, run)
	}
	return run(ctx, newObserver(g, logger))
}
