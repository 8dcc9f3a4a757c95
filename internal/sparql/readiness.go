package sparql

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Pinger is implemented by clients that can probe their endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WaitUntilReady blocks until p answers a probe successfully, retrying with a
// fixed delay and no upper bound on attempts. It returns early only when ctx
// is done.
func WaitUntilReady(ctx context.Context, p Pinger, delay time.Duration, logger *zerolog.Logger) error {
	for attempt := 1; ; attempt++ {
		err := p.Ping(ctx)
		if err == nil {
			logger.Info().Int("attempts", attempt).Msg("Database is up")
			return nil
		}
		logger.Info().Err(err).Int("attempt", attempt).Msg("Waiting for database...")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
