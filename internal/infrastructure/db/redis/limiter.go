package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/error-monitor/internal/core/ports"
)

// incrExpireScript increments the window counter and starts the window on
// the first hit.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// FixedWindowLimiter is a ports.RateLimiter shared by every API instance
// pointing at the same Redis.
type FixedWindowLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string
}

func NewFixedWindowLimiter(client *redis.Client, max int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, max: max, window: window, prefix: "rl:"}
}

func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	k := l.prefix + key
	count, err := incrExpireScript.Run(ctx, l.client, []string{k}, l.window.Milliseconds()).Int64()
	if err != nil {
		return ports.RateDecision{}, fmt.Errorf("rate limit incr: %w", err)
	}

	ttl, err := l.client.PTTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}

	remaining := l.max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return ports.RateDecision{
		Allowed:   int(count) <= l.max,
		Limit:     l.max,
		Remaining: remaining,
		Reset:     ttl,
	}, nil
}
