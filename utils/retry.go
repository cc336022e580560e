package utils

import (
	"context"
	"time"
)

// WaitFunc decides whether a failed attempt should be retried and how long
// to sleep first. attempt counts from 1.
type WaitFunc func(attempt int, err error) (time.Duration, bool)

// Retry runs op up to maxAttempts times, consulting wait after each failure.
// The sleep between attempts is context-aware; cancellation wins over the
// backoff. The last attempt's error is returned when the budget runs out.
func Retry(ctx context.Context, maxAttempts int, wait WaitFunc, op func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		delay, retryable := wait(attempt, err)
		if !retryable {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
