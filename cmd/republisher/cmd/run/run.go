package run

import (
	"context"
	"fmt"
	"io"

	"github.com/lblod/republisher/cmd/application"
	"github.com/lblod/republisher/internal/report"
	"github.com/lblod/republisher/pkg/errors"
	"github.com/lblod/republisher/pkg/logging"
)

// Execute runs the reconciliation once, or repeatedly when an interval is
// set, printing unit outcomes to out as they happen.
func Execute(ctx context.Context, app application.Application, settings application.RunSettings, out io.Writer) error {
	format, err := report.ParseFormat(settings.ReportFormat)
	if err != nil {
		return err
	}

	logger := app.Logger()
	ctx = logging.WithLogger(ctx, logger)

	if !settings.SkipReadiness {
		if err := app.WaitForStore(ctx); err != nil {
			return fmt.Errorf("waiting for graph store: %w", err)
		}
	}

	r, err := app.Republisher(settings)
	if err != nil {
		return err
	}
	if r == nil {
		return errors.NewConfigError("republisher", "application returned no republisher", nil)
	}
	r.OnOutcome(outcomePrinter(out))

	if settings.Interval > 0 {
		err := r.RunEvery(ctx, settings.Interval, func(rep *report.Report, _ error) {
			if writeErr := finish(out, rep, settings.ReportPath, format); writeErr != nil {
				logger.Error().Err(writeErr).Msg("Failed to write run report")
			}
		})
		// An interrupted schedule is a normal way to stop
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	rep, runErr := r.Run(ctx)
	if err := finish(out, rep, settings.ReportPath, format); err != nil {
		return err
	}
	return runErr
}

// finish prints the summary of rep and writes it to path. A nil report,
// from a run that aborted, writes nothing.
func finish(out io.Writer, rep *report.Report, path string, format report.Format) error {
	if rep == nil {
		return nil
	}

	fmt.Fprintln(out, rep.Summary())
	if path == "" {
		return nil
	}
	if err := rep.WriteFile(path, format); err != nil {
		return err
	}
	fmt.Fprintf(out, "Report written to %s\n", path)
	return nil
}
