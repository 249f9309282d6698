package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config carries the REDIS_* settings. An empty Addr means Redis is disabled
// and the caller falls back to in-process limiting without a token cache.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	// Timeout bounds the startup ping; zero means pingTimeout.
	Timeout time.Duration
}

// Connect opens the client shared by the auth limiter, the token cache and
// the readiness probe, and fails fast when the server is unreachable.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	client := redis.NewClient(opts)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: ping: %w", cfg.Addr, err)
	}
	return client, nil
}

// Store reports Redis reachability on /health/ready.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Name() string { return "redis" }
