package resilience

import (
	"context"
	"time"
)

// Backoff computes attempt-indexed exponential delays.
//
// The delay is a pure function of the attempt index: Base << attempt,
// capped at Max when Max is set. No jitter is applied, which keeps retry
// schedules reproducible under test.
type Backoff struct {
	// Base is the delay before the second attempt (attempt index 0).
	Base time.Duration
	// Max caps the delay; zero means uncapped.
	Max time.Duration
}

// DefaultBackoff returns the standard 1s, 2s, 4s, ... schedule.
func DefaultBackoff() Backoff {
	return Backoff{Base: 1 * time.Second}
}

// Delay returns the wait before retrying after the given attempt index.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := b.Base << uint(attempt)
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// Sleeper blocks for a duration, honoring context cancellation.
// Production code uses RealSleeper; tests inject a recorder.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper sleeps on the wall clock.
type RealSleeper struct{}

// Sleep blocks for d or until ctx is done, whichever comes first.
func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
