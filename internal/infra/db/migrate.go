package db

import (
	"context"
	"fmt"
	"log/slog"

	"daily-journal/internal/resilience/circuitbreaker"
)

// Dialect selects the SQL schema variant.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var schemas = map[Dialect][]string{
	Postgres: {
		`
CREATE TABLE IF NOT EXISTS entries (
    id         UUID PRIMARY KEY,
    date       TEXT NOT NULL UNIQUE,
    content    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT entries_updated_after_created CHECK (updated_at >= created_at)
)`,
	},
	SQLite: {
		`
CREATE TABLE IF NOT EXISTS entries (
    id         TEXT PRIMARY KEY,
    date       TEXT NOT NULL UNIQUE,
    content    TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`,
	},
}

// optional statements may fail without aborting the migration.
var optional = map[Dialect][]string{
	// pg_trgm needs superuser or a preinstalled extension.
	Postgres: {
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
		`CREATE INDEX IF NOT EXISTS idx_entries_content_trgm ON entries USING gin(content gin_trgm_ops)`,
	},
}

var teardown = map[Dialect][]string{
	Postgres: {
		`DROP INDEX IF EXISTS idx_entries_content_trgm`,
		`DROP TABLE IF EXISTS entries`,
	},
	SQLite: {
		`DROP TABLE IF EXISTS entries`,
	},
}

// MigrateUp creates the entries table. The unique constraint on date backs
// both upserts and date-ordered scans. It is idempotent.
func MigrateUp(ctx context.Context, db circuitbreaker.Querier, dialect Dialect) error {
	stmts, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("MigrateUp: unknown dialect %q", dialect)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}
	for _, stmt := range optional[dialect] {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			slog.Warn("optional migration step skipped",
				slog.String("dialect", string(dialect)),
				slog.Any("error", err))
		}
	}
	return nil
}

// MigrateDown drops the entries table and everything in it.
func MigrateDown(ctx context.Context, db circuitbreaker.Querier, dialect Dialect) error {
	stmts, ok := teardown[dialect]
	if !ok {
		return fmt.Errorf("MigrateDown: unknown dialect %q", dialect)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}
	return nil
}
