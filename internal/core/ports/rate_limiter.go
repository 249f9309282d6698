package ports

import (
	"context"
	"time"
)

// RateDecision is the outcome of counting one request against a limit.
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// Reset is the time left until the current window ends.
	Reset time.Duration
}

// RateLimiter counts requests per key over a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}
