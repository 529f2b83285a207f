package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// connectTimeout caps a single connection attempt.
const connectTimeout = 5 * time.Second

// retry calls ping until it succeeds, attempts are exhausted, or ctx is done.
// The wait between attempts doubles, starting at backoff.
func retry(ctx context.Context, log zerolog.Logger, target string, attempts int, backoff time.Duration, ping func(context.Context) error) error {
	attempts = max(attempts, 1)
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		err = ping(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		log.Warn().
			Err(err).
			Str("target", target).
			Int("attempt", attempt).
			Dur("retry_in", backoff).
			Msg("Connection attempt failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("%s unreachable after %d attempts: %w", target, attempts, err)
}
