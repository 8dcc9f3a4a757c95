package republisher

import (
	"context"
	"time"

	"github.com/lblod/republisher/internal/report"
	"github.com/lblod/republisher/pkg/errors"
	"github.com/lblod/republisher/pkg/logging"
)

// ReportHandler receives the outcome of each scheduled run.
type ReportHandler func(rep *report.Report, err error)

// RunEvery runs immediately and then once per interval until ctx is done.
// Runs never overlap; a run that outlasts the interval delays the next one.
// It returns ctx.Err() on cancellation, or the error of a run that failed
// fatally.
func (r *Republisher) RunEvery(ctx context.Context, interval time.Duration, handle ReportHandler) error {
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "interval",
			Value:   interval,
			Message: "interval must be positive",
		}
	}

	logger := logging.FromContext(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		rep, err := r.Run(ctx)
		if handle != nil {
			handle(rep, err)
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.IsFatal(err) {
				return err
			}
			logger.Error().Err(err).Msg("Scheduled run failed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
