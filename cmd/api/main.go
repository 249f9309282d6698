// Command api serves the error monitor HTTP API.
//
// @title                      Error Monitor API
// @version                    1.0
// @description                Authenticated error event tracking.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/error-monitor/internal/api"
	"github.com/99minutos/error-monitor/internal/api/handler"
	"github.com/99minutos/error-monitor/internal/api/middleware"
	"github.com/99minutos/error-monitor/internal/core/ports"
	"github.com/99minutos/error-monitor/internal/core/service"
	"github.com/99minutos/error-monitor/internal/infrastructure/config"
	"github.com/99minutos/error-monitor/internal/infrastructure/db/redis"
	"github.com/99minutos/error-monitor/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(run(ctx), os.Stderr)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// exitCode logs a fatal run error and echoes it to w for processes started
// before the logger was configured.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	log := logger.Get()
	log.Error().Err(err).Msg("server stopped with error")
	fmt.Fprintln(w, err)
	return 1
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "error-monitor",
		Env:     cfg.Env,
	})

	if cfg.UsesDevSecret() {
		log.Warn().Msg("JWT_SECRET not set, using the development key; tokens are forgeable")
		cfg.Auth.JWTSecret = config.DevJWTSecret
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.close(context.Background()); cerr != nil {
			log.Warn().Err(cerr).Msg("close store")
		}
	}()

	var (
		cache          ports.TokenCache
		limiter        ports.RateLimiter = middleware.NewLocalLimiter(cfg.Auth.RateLimit, cfg.Auth.RateWindow)
		limiterBackend                   = "local"
		others         []handler.Dependency
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)

		limiter = redis.NewFixedWindowLimiter(rdb, cfg.Auth.RateLimit, cfg.Auth.RateWindow)
		limiterBackend = "redis"
		others = append(others, redis.NewStore(rdb))
		if cfg.Auth.CacheTTL > 0 {
			cache = redis.NewTokenCache(rdb, cfg.Auth.CacheTTL)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	authSvc := service.NewAuthService(st.users, service.AuthOptions{
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
		Cache:      cache,
	}, log.With().Str("component", "auth").Logger())
	eventSvc := service.NewEventService(st.events, st.categories, log.With().Str("component", "events").Logger())

	e := api.NewRouter(api.Deps{
		Auth:           authSvc,
		Events:         eventSvc,
		AuthLimiter:    limiter,
		LimiterBackend: limiterBackend,
		Database:       st.database,
		Others:         others,
		CORSOrigins:    cfg.CORSOrigins(),
		Log:            log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("close redis")
	}
}
