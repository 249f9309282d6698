package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

// TokenCache is a ports.TokenCache that remembers verified tokens for ttl.
// Keys are derived from a hash of the token signature so raw tokens never
// reach Redis.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenCache(client *redis.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{client: client, ttl: ttl}
}

type cachedUser struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      domain.Role `json:"role"`
}

func (c *TokenCache) Get(ctx context.Context, token string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("token cache get: %w", err)
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, fmt.Errorf("token cache decode: %w", err)
	}
	return &domain.User{
		ID:        cu.ID,
		Email:     cu.Email,
		FirstName: cu.FirstName,
		LastName:  cu.LastName,
		Role:      cu.Role,
		Active:    true,
	}, nil
}

func (c *TokenCache) Set(ctx context.Context, token string, user *domain.User) error {
	raw, err := json.Marshal(cachedUser{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	})
	if err != nil {
		return fmt.Errorf("token cache encode: %w", err)
	}
	if err := c.client.Set(ctx, tokenKey(token), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("token cache set: %w", err)
	}
	return nil
}

func tokenKey(token string) string {
	sig := token
	if i := strings.LastIndexByte(token, '.'); i >= 0 {
		sig = token[i+1:]
	}
	sum := sha256.Sum256([]byte(sig))
	return "auth:token:" + hex.EncodeToString(sum[:])
}
