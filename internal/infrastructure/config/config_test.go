package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 500, cfg.Auth.RateLimit)
	assert.Equal(t, 15*time.Minute, cfg.Auth.RateWindow)
	assert.Zero(t, cfg.Auth.CacheTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.True(t, cfg.UsesDevSecret())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                 "8080",
		"STORE_DRIVER":         "Mongo",
		"JWT_SECRET":           "s3cr3t",
		"AUTH_CACHE_TTL":       "5s",
		"CORS_ALLOWED_ORIGINS": "http://a.test, ,http://b.test",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.False(t, cfg.UsesDevSecret())
	assert.Equal(t, 5*time.Second, cfg.Auth.CacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"STORE_DRIVER": "sqlite"}))
	assert.Error(t, err)
}
