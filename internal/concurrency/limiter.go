package concurrency

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces DNSSEC side-query issuance so that a name with many
// delegations cannot burst-fire collection queries at a single upstream
// server: a token bucket built on golang.org/x/time/rate. One Limiter is
// shared by every zone's fetches within a single Authenticate call.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter allows up to burst queries immediately and thereafter
// queriesPerSecond sustained.
func NewLimiter(queriesPerSecond float64, burst int) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(queriesPerSecond), burst)}
}

// Wait blocks until a token is available or ctx is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
