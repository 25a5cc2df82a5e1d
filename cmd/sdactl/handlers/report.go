package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/imamik/sdactl/internal/metrics"
	"github.com/imamik/sdactl/internal/platform/s3"
	"github.com/imamik/sdactl/internal/provisioning"
)

// reportArchiver uploads a run report to object storage.
type reportArchiver interface {
	Archive(ctx context.Context, loc s3.Location, data []byte) error
}

var (
	// newArchiver creates the object storage client for s3:// report destinations.
	newArchiver = func(ctx context.Context) (reportArchiver, error) {
		return s3.NewClient(ctx, s3.OptionsFromEnv())
	}

	// writeMetrics exports the run's metrics (for testing injection).
	writeMetrics = metrics.WriteTextfile
)

// finishRun prints the summary, writes the report and metrics when asked to,
// and turns an aborted run into the command's error.
func finishRun(ctx context.Context, g *GlobalOptions, label string, report *provisioning.Report, runErr error) error {
	_, _ = fmt.Fprint(stdout, renderSummary(label, report))

	var errs []error
	if runErr != nil {
		errs = append(errs, fmt.Errorf("%s failed: %w", label, runErr))
	}

	if g.ReportPath != "" {
		if err := writeReport(ctx, g.ReportPath, report); err != nil {
			errs = append(errs, err)
		} else {
			_, _ = fmt.Fprintf(stdout, "Report written to %s\n", g.ReportPath)
		}
	}

	if g.MetricsFile != "" {
		if err := writeMetrics(g.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}

	return errors.Join(errs...)
}

// writeReport stores the JSON report at dest, a local path or an s3:// URL.
func writeReport(ctx context.Context, dest string, report *provisioning.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if !s3.IsLocation(dest) {
		if err := writeFile(dest, data, 0o600); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	loc, err := s3.ParseLocation(dest)
	if err != nil {
		return err
	}
	archiver, err := newArchiver(ctx)
	if err != nil {
		return err
	}
	if err := archiver.Archive(ctx, loc, data); err != nil {
		return fmt.Errorf("failed to archive report: %w", err)
	}
	return nil
}
