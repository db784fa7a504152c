package circuitbreaker

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB the SQL entry repositories use.
// Both *sql.DB and *DB satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DB wraps a *sql.DB so every query and statement goes through a circuit breaker.
// When the store is down, calls fail fast with ErrOpen instead of piling up on the pool.
type DB struct {
	cb *CircuitBreaker
	db *sql.DB
}

// NewDB wraps db with a breaker built from StoreConfig(name).
func NewDB(db *sql.DB, name string) *DB {
	return NewDBWithConfig(db, StoreConfig(name))
}

// NewDBWithConfig wraps db with a breaker built from cfg.
func NewDBWithConfig(db *sql.DB, cfg Config) *DB {
	return &DB{cb: New(cfg), db: db}
}

// QueryContext runs a query through the breaker.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	result, err := d.cb.Execute(func() (interface{}, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// ExecContext runs a statement through the breaker.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := d.cb.Execute(func() (interface{}, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}

// Ping checks connectivity directly, bypassing the breaker, so health probes
// can observe recovery while the breaker is still open.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Stats returns the pool statistics of the underlying database.
func (d *DB) Stats() sql.DBStats {
	return d.db.Stats()
}

// IsOpen reports whether the breaker is currently rejecting calls.
func (d *DB) IsOpen() bool {
	return d.cb.IsOpen()
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}
