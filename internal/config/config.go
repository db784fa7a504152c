// Package config assembles the API server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"daily-journal/internal/infra/db"
	envcfg "daily-journal/pkg/config"
)

// Store kinds accepted by JOURNAL_STORE.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMongo    = "mongo"
)

const defaultStatsSchedule = "@every 1m"

// Config is the API server configuration.
type Config struct {
	Port    int
	Version string

	Log   LogConfig
	Store StoreConfig
	HTTP  HTTPConfig

	// StatsSchedule is the cron spec for refreshing the journal gauges.
	StatsSchedule string
}

type LogConfig struct {
	Level  string
	Format string
}

// StoreConfig selects and locates the backing store.
type StoreConfig struct {
	Kind          string
	DatabaseURL   string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
	Pool          db.ConnectionConfig
}

// HTTPConfig covers the middleware stack and server lifecycle.
type HTTPConfig struct {
	CORSOrigins     []string
	RateLimitRPS    float64
	RateLimitBurst  int
	BodyLimit       int64
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads .env files (missing files are ignored), then the environment.
// Values already present in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	pool := db.DefaultConnectionConfig()
	cfg := &Config{
		Port:    envcfg.GetEnvInt("PORT", 3000),
		Version: envcfg.GetEnvString("APP_VERSION", "dev"),
		Log: LogConfig{
			Level:  envcfg.GetEnvString("LOG_LEVEL", "info"),
			Format: envcfg.GetEnvString("LOG_FORMAT", "json"),
		},
		Store: StoreConfig{
			Kind:          strings.ToLower(envcfg.GetEnvString("JOURNAL_STORE", StorePostgres)),
			DatabaseURL:   envcfg.GetEnvString("DATABASE_URL", ""),
			SQLitePath:    envcfg.GetEnvString("SQLITE_PATH", "journal.db"),
			MongoURI:      envcfg.GetEnvString("MONGODB_URI", "mongodb://localhost:27017/dailyjournal"),
			MongoDatabase: envcfg.GetEnvString("MONGODB_DATABASE", "dailyjournal"),
			Pool: db.ConnectionConfig{
				MaxOpenConns:    envcfg.GetEnvInt("DB_MAX_OPEN_CONNS", pool.MaxOpenConns),
				MaxIdleConns:    envcfg.GetEnvInt("DB_MAX_IDLE_CONNS", pool.MaxIdleConns),
				ConnMaxLifetime: envcfg.GetEnvDuration("DB_CONN_MAX_LIFETIME", pool.ConnMaxLifetime),
				ConnMaxIdleTime: envcfg.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", pool.ConnMaxIdleTime),
			},
		},
		HTTP: HTTPConfig{
			CORSOrigins:     envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitRPS:    envcfg.GetEnvFloat("RATE_LIMIT_RPS", 20),
			RateLimitBurst:  envcfg.GetEnvInt("RATE_LIMIT_BURST", 40),
			BodyLimit:       envcfg.GetEnvInt64("REQUEST_BODY_LIMIT", 1<<20),
			RequestTimeout:  envcfg.GetEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout: envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		StatsSchedule: envcfg.GetEnvString("STATS_REFRESH_SCHEDULE", defaultStatsSchedule),
	}

	cfg.applyFallbacks()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFallbacks replaces recoverable bad values with defaults.
func (c *Config) applyFallbacks() {
	if err := envcfg.ValidateCronSchedule(c.StatsSchedule); err != nil {
		slog.Warn("invalid STATS_REFRESH_SCHEDULE, using default",
			slog.String("value", c.StatsSchedule),
			slog.String("default", defaultStatsSchedule),
			slog.String("error", err.Error()))
		c.StatsSchedule = defaultStatsSchedule
		recordFallback("STATS_REFRESH_SCHEDULE")
	}

	pool := db.DefaultConnectionConfig()
	if c.Store.Pool.MaxOpenConns <= 0 {
		c.Store.Pool.MaxOpenConns = pool.MaxOpenConns
		recordFallback("DB_MAX_OPEN_CONNS")
	}
	if c.Store.Pool.MaxIdleConns <= 0 || c.Store.Pool.MaxIdleConns > c.Store.Pool.MaxOpenConns {
		c.Store.Pool.MaxIdleConns = min(pool.MaxIdleConns, c.Store.Pool.MaxOpenConns)
		recordFallback("DB_MAX_IDLE_CONNS")
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if err := envcfg.ValidateIntRange(c.Port, 1, 65535); err != nil {
		return fmt.Errorf("PORT: %w", err)
	}

	switch c.Store.Kind {
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when JOURNAL_STORE=%s", StorePostgres)
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH cannot be empty")
		}
	case StoreMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return fmt.Errorf("MONGODB_URI and MONGODB_DATABASE are required when JOURNAL_STORE=%s", StoreMongo)
		}
	default:
		return fmt.Errorf("JOURNAL_STORE must be one of %s, %s, %s; got %q",
			StorePostgres, StoreSQLite, StoreMongo, c.Store.Kind)
	}

	if c.HTTP.RateLimitRPS > 0 && c.HTTP.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	if c.HTTP.BodyLimit <= 0 {
		return fmt.Errorf("REQUEST_BODY_LIMIT must be positive")
	}
	if err := envcfg.ValidateDurationRange(c.HTTP.RequestTimeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}
	if err := envcfg.ValidatePositiveDuration(c.HTTP.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
