package chat

import (
	"context"
	"time"
)

// RetryPolicy describes the rate-limit retry behavior: how many attempts in
// total and how long to wait between them. Sleep is injectable so tests can
// record delays instead of serving them.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  int
	Sleep       func(ctx context.Context, d time.Duration) error
}

func DefaultRetryPolicy(maxAttempts int, baseDelay time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		Multiplier:  2,
	}
}

// Backoff returns the delay after a given zero-based attempt: base, base*m,
// base*m^2, ...
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := p.BaseDelay
	mult := p.Multiplier
	if mult < 2 {
		mult = 2
	}
	for i := 0; i < attempt; i++ {
		d *= time.Duration(mult)
	}
	return d
}

// Wait blocks for the attempt's backoff delay or until the context ends. Only
// the request being handled blocks here; nothing shared is held.
func (p RetryPolicy) Wait(ctx context.Context, attempt int) error {
	d := p.Backoff(attempt)
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
