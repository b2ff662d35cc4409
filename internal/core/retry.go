package core

import (
	"context"
	"time"
)

// retry runs fn up to attempts times with doubling backoff between
// tries, capped at max. Errors rejected by retryable stop the loop
// immediately. The sleep is context-aware so a signal cancels a waiting
// pass right away.
func retry(ctx context.Context, attempts int, initial, max time.Duration, retryable func(error) bool, fn func() error) error {
	if attempts <= 1 {
		return fn()
	}

	var err error

	d := initial

	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return ctx.Err()
			}

			if d < max {
				d *= 2
				if d > max {
					d = max
				}
			}
		}

		if err = fn(); err == nil {
			return nil
		}

		if !retryable(err) {
			return err
		}
	}

	return err
}
