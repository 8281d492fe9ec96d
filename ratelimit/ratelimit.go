// Package ratelimit provides a small calls-per-period limiter for outbound
// API calls.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Defaults match the moderation endpoint budget: 10 calls per minute.
const (
	DefaultCalls  = 10
	DefaultPeriod = time.Minute
)

// Limiter allows at most calls invocations per period, with the full budget
// available as an initial burst.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing calls invocations per period.
func New(calls int, period time.Duration) *Limiter {
	if calls <= 0 {
		calls = DefaultCalls
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(period/time.Duration(calls)), calls),
	}
}

// NewDefault creates a limiter with the default budget.
func NewDefault() *Limiter {
	return New(DefaultCalls, DefaultPeriod)
}

// Allow reports whether a call may proceed now, consuming budget if so.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Wait blocks until a call may proceed or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
