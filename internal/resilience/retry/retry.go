// Package retry retries store connection attempts at startup with exponential
// backoff and jitter. It is not used on the request path: a failed store call
// during a request is reported, never re-issued.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Config holds the configuration for retry logic.
type Config struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Multiplier is the growth factor for exponential backoff.
	Multiplier float64

	// JitterFraction is the fraction of delay to add as random jitter (0.0 to 1.0).
	JitterFraction float64
}

// StoreConnectConfig gives a database container roughly half a minute to come up.
func StoreConnectConfig() Config {
	return Config{
		MaxAttempts:    8,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// WithBackoff runs fn until it succeeds, returns a non-transient error, ctx is
// done, or MaxAttempts is reached. op names the operation in log records.
func WithBackoff(ctx context.Context, cfg Config, op string, fn func(ctx context.Context) error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.String("op", op),
					slog.Int("attempt", attempt))
			}
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s: retry aborted: %w", op, ctx.Err())
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		slog.Warn("operation failed, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: retry aborted: %w", op, ctx.Err())
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		delay = addJitter(delay, cfg.JitterFraction)
	}

	return fmt.Errorf("%s: max retry attempts (%d) exceeded: %w", op, cfg.MaxAttempts, lastErr)
}

// Postgres SQLSTATEs returned while the server is still starting or shutting down.
var transientSQLStates = map[string]bool{
	"57P03": true, // cannot_connect_now
	"53300": true, // too_many_connections
}

// IsTransient reports whether a connection attempt is worth repeating.
// A per-attempt deadline counts as transient; cancellation does not.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientSQLStates[pgErr.Code]
	}
	return false
}

func addJitter(duration time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return duration
	}
	if jitterFraction > 1.0 {
		jitterFraction = 1.0
	}
	// #nosec G404 -- backoff jitter does not need cryptographic randomness.
	jitter := time.Duration(rand.Float64() * float64(duration) * jitterFraction)
	return duration + jitter
}
