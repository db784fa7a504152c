// Package db opens the journal's backing stores and prepares their schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"daily-journal/internal/resilience/retry"
)

// SQLiteDriverName is go-sqlite3 with the casefold SQL function registered.
const SQLiteDriverName = "sqlite3_journal"

// pingTimeout bounds a single connection attempt.
const pingTimeout = 5 * time.Second

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

func (c ConnectionConfig) apply(db *sql.DB) {
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(c.ConnMaxLifetime)
	db.SetConnMaxIdleTime(c.ConnMaxIdleTime)
}

// OpenPostgres opens a pgx-backed pool and waits for the server to accept
// connections.
func OpenPostgres(ctx context.Context, dsn string, pool ConnectionConfig) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("OpenPostgres: empty DSN")
	}
	return openSQL(ctx, "pgx", dsn, pool)
}

var registerSQLite sync.Once

// OpenSQLite opens (creating if needed) the database file at path. SQLite
// serializes writers, so the pool is held to a single connection.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("OpenSQLite: empty path")
	}
	registerSQLite.Do(func() {
		sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("casefold", strings.ToLower, true)
			},
		})
	})

	pool := ConnectionConfig{MaxOpenConns: 1, MaxIdleConns: 1}
	return openSQL(ctx, SQLiteDriverName, path+"?_busy_timeout=5000&_foreign_keys=on", pool)
}

func openSQL(ctx context.Context, driver, dsn string, pool ConnectionConfig) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	pool.apply(db)

	slog.Info("database connection pool configured",
		slog.String("driver", driver),
		slog.Int("max_open_conns", pool.MaxOpenConns),
		slog.Int("max_idle_conns", pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", pool.ConnMaxIdleTime))

	err = retry.WithBackoff(ctx, retry.StoreConnectConfig(), "ping "+driver, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	slog.Info("database connection established successfully", slog.String("driver", driver))
	return db, nil
}

// OpenMongo connects to uri and returns a handle on database. The client is
// reachable through Database.Client for shutdown.
func OpenMongo(ctx context.Context, uri, database string) (*mongo.Database, error) {
	if uri == "" || database == "" {
		return nil, fmt.Errorf("OpenMongo: uri and database are required")
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(pingTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect: %w", err)
	}

	err = retry.WithBackoff(ctx, retry.StoreConnectConfig(), "ping mongo", func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return client.Ping(pingCtx, readpref.Primary())
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	slog.Info("mongo connection established successfully", slog.String("database", database))
	return client.Database(database), nil
}
