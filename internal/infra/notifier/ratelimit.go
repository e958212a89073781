package notifier

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outbound notification sends with a token bucket so a
// burst of queued items cannot flood the push backend.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter that sustains requestsPerSecond and allows
// short bursts up to burst sends.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Allow blocks until a token is available or the context is canceled. Call it
// before every send.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
