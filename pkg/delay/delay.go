// Package delay models the simulated network latency the storefront applies
// before a login or order placement completes. It is injected as a
// collaborator so a real backend call can replace it later.
package delay

import (
	"context"
	"time"
)

// Sleeper blocks for a backend-shaped pause. Implementations must honor
// context cancellation.
type Sleeper interface {
	Sleep(ctx context.Context) error
}

// Fixed waits a constant duration, the completion contract of the
// simulated network call: it always succeeds unless cancelled first.
type Fixed struct {
	d time.Duration
}

func NewFixed(d time.Duration) Fixed {
	return Fixed{d: d}
}

func (f Fixed) Sleep(ctx context.Context) error {
	if f.d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// None completes immediately; tests use it to keep checkout synchronous.
type None struct{}

func (None) Sleep(ctx context.Context) error {
	return ctx.Err()
}
