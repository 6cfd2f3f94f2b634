package watcher

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter to gate rescans during bursty file churn.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter creates a new token bucket limiter.
// r: tokens per second.
// b: burst size.
func NewLimiter(r float64, b int) *Limiter {
	return &Limiter{
		inner: rate.NewLimiter(rate.Limit(r), b),
	}
}

// Allow reports whether an event may happen now.
func (l *Limiter) Allow() bool {
	return l.inner.AllowN(time.Now(), 1)
}

// Wait blocks until a token is available.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.inner.WaitN(ctx, 1)
}
