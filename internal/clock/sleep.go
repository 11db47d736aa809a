// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepFunc matches SleepWithContext so callers can swap it out in tests.
type SleepFunc func(context.Context, time.Duration) error

// SleepWithContext waits for the duration or returns early if the context is canceled.
// A non-positive duration returns immediately unless ctx is already done.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff returns initial doubled once per previous attempt, capped at limit.
// attempt starts at 1.
func Backoff(initial, limit time.Duration, attempt int) time.Duration {
	if initial <= 0 {
		return 0
	}
	d := initial
	for i := 1; i < attempt; i++ {
		if limit > 0 && d >= limit/2 {
			return limit
		}
		d *= 2
	}
	if limit > 0 && d > limit {
		return limit
	}
	return d
}
