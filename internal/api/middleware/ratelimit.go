package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/99minutos/error-monitor/internal/api/metrics"
	"github.com/99minutos/error-monitor/internal/core/ports"
)

const rateLimitedMessage = "Too many authentication attempts, please try again later"

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c echo.Context) string

// KeyByIP limits by client IP only.
func KeyByIP(prefix string) KeyFunc {
	return func(c echo.Context) string {
		ip := c.RealIP()
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":ip:" + ip
	}
}

// RateLimit rejects requests once limiter reports the key's window as
// exhausted. Limiter failures let the request through.
func RateLimit(limiter ports.RateLimiter, backend string, keyFn KeyFunc, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			d, err := limiter.Allow(c.Request().Context(), keyFn(c))
			if err != nil {
				log.Warn().Err(err).Str("backend", backend).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			h := c.Response().Header()
			resetSec := int(math.Ceil(d.Reset.Seconds()))
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.Itoa(resetSec))

			if !d.Allowed {
				metrics.RateLimitedTotal.WithLabelValues(backend).Inc()
				if resetSec > 0 {
					h.Set("Retry-After", strconv.Itoa(resetSec))
				}
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": rateLimitedMessage})
			}
			return next(c)
		}
	}
}

// localPruneThreshold bounds how many idle keys LocalLimiter keeps before
// sweeping.
const localPruneThreshold = 10000

type localEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is an in-process ports.RateLimiter built on token buckets. It
// admits max requests per window per key with a burst of max.
type LocalLimiter struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	limit   rate.Limit
	max     int
	window  time.Duration
	now     func() time.Time
}

func NewLocalLimiter(max int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		entries: make(map[string]*localEntry),
		limit:   rate.Limit(float64(max) / window.Seconds()),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (ports.RateDecision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.entries) > localPruneThreshold {
		l.prune(now)
	}

	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{lim: rate.NewLimiter(l.limit, l.max)}
		l.entries[key] = e
	}
	e.lastSeen = now

	allowed := e.lim.AllowN(now, 1)
	tokens := e.lim.TokensAt(now)
	remaining := int(math.Floor(tokens))
	if remaining < 0 {
		remaining = 0
	}

	var reset time.Duration
	if !allowed && l.limit > 0 {
		reset = time.Duration((1 - tokens) / float64(l.limit) * float64(time.Second))
	}
	return ports.RateDecision{
		Allowed:   allowed,
		Limit:     l.max,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}

func (l *LocalLimiter) prune(now time.Time) {
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > l.window {
			delete(l.entries, k)
		}
	}
}
