package main

import (
	"context"
	"fmt"
	"log/slog"

	"daily-journal/internal/config"
	hhttp "daily-journal/internal/handler/http"
	mongoRepo "daily-journal/internal/infra/adapter/persistence/mongo"
	pgRepo "daily-journal/internal/infra/adapter/persistence/postgres"
	sqliteRepo "daily-journal/internal/infra/adapter/persistence/sqlite"
	"daily-journal/internal/infra/db"
	"daily-journal/internal/repository"
	"daily-journal/internal/resilience/circuitbreaker"
)

// store bundles the repository with what the health endpoints and shutdown need.
type store struct {
	repo  repository.EntryRepository
	ping  hhttp.Pinger
	close func(ctx context.Context) error
}

// openStore connects to the configured backend, waiting for it to come up,
// and applies the schema.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*store, error) {
	switch cfg.Kind {
	case config.StorePostgres, config.StoreSQLite:
		return openSQLStore(ctx, cfg)
	case config.StoreMongo:
		database, err := db.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		pinger := mongoRepo.Pinger{DB: database}
		if err := mongoRepo.EnsureIndexes(ctx, database); err != nil {
			_ = pinger.Close(context.Background())
			return nil, err
		}
		logger.Info("mongo indexes ensured", slog.String("collection", mongoRepo.CollectionName))
		cb := circuitbreaker.New(circuitbreaker.StoreConfig("mongo"))
		return &store{
			repo:  mongoRepo.NewEntryRepo(database, cb),
			ping:  pinger,
			close: pinger.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Kind)
	}
}

func openSQLStore(ctx context.Context, cfg config.StoreConfig) (*store, error) {
	var (
		sqlDB   *circuitbreaker.DB
		dialect db.Dialect
		newRepo func(circuitbreaker.Querier) repository.EntryRepository
	)
	switch cfg.Kind {
	case config.StorePostgres:
		raw, err := db.OpenPostgres(ctx, cfg.DatabaseURL, cfg.Pool)
		if err != nil {
			return nil, err
		}
		sqlDB, dialect, newRepo = circuitbreaker.NewDB(raw, "postgres"), db.Postgres, pgRepo.NewEntryRepo
	default:
		raw, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		sqlDB, dialect, newRepo = circuitbreaker.NewDB(raw, "sqlite"), db.SQLite, sqliteRepo.NewEntryRepo
	}

	if err := db.MigrateUp(ctx, sqlDB, dialect); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &store{
		repo:  newRepo(sqlDB),
		ping:  sqlDB,
		close: func(context.Context) error { return sqlDB.Close() },
	}, nil
}
