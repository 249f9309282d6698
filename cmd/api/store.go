package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/error-monitor/internal/api/handler"
	"github.com/99minutos/error-monitor/internal/core/ports"
	"github.com/99minutos/error-monitor/internal/infrastructure/config"
	"github.com/99minutos/error-monitor/internal/infrastructure/db/mongo"
	"github.com/99minutos/error-monitor/internal/infrastructure/db/postgres"
)

// store bundles the repositories of the configured backend.
type store struct {
	users      ports.AuthRepository
	events     ports.EventRepository
	categories ports.CategoryRepository
	database   handler.Dependency
	close      func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	if cfg.Store.Driver == config.DriverMongo {
		return openMongo(ctx, cfg, log)
	}
	return openPostgres(ctx, cfg, log)
}

func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.Postgres.URL,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Msg("postgres connected, migrations applied")

	events := postgres.NewEventRepository(db)
	return &store{
		users:      postgres.NewUserRepository(db),
		events:     events,
		categories: events,
		database:   postgres.NewStore(db),
		close:      func(context.Context) error { return db.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected, indexes ensured")

	events := mongo.NewEventRepository(db)
	return &store{
		users:      mongo.NewAuthRepository(db),
		events:     events,
		categories: events,
		database:   mongo.NewStore(client),
		close:      client.Disconnect,
	}, nil
}
