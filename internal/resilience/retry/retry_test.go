package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   5 * time.Millisecond,
		MaxDelay:       20 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff_FirstAttempt(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), "ping", func(context.Context) error {
		attempts++
		return nil
	})

	if err != nil || attempts != 1 {
		t.Errorf("err = %v, attempts = %d; want nil, 1", err, attempts)
	}
}

func TestWithBackoff_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(5), "ping", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("dial tcp 127.0.0.1:5432: %w", syscall.ECONNREFUSED)
		}
		return nil
	})

	if err != nil || attempts != 3 {
		t.Errorf("err = %v, attempts = %d; want nil, 3", err, attempts)
	}
}

func TestWithBackoff_MaxAttemptsExceeded(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), "ping", func(context.Context) error {
		attempts++
		return syscall.ECONNREFUSED
	})

	if !errors.Is(err, syscall.ECONNREFUSED) {
		t.Errorf("err = %v, want wrapped ECONNREFUSED", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestWithBackoff_PermanentErrorStopsImmediately(t *testing.T) {
	authErr := &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(5), "ping", func(context.Context) error {
		attempts++
		return authErr
	})

	if !errors.Is(err, authErr) || attempts != 1 {
		t.Errorf("err = %v, attempts = %d; want auth error after 1 attempt", err, attempts)
	}
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := WithBackoff(ctx, Config{MaxAttempts: 5, InitialDelay: time.Second, MaxDelay: time.Second, Multiplier: 1}, "ping",
		func(context.Context) error {
			attempts++
			cancel()
			return syscall.ECONNREFUSED
		})

	if !errors.Is(err, context.Canceled) || attempts != 1 {
		t.Errorf("err = %v, attempts = %d", err, attempts)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"attempt deadline", fmt.Errorf("ping: %w", context.DeadlineExceeded), true},
		{"refused", syscall.ECONNREFUSED, true},
		{"reset", syscall.ECONNRESET, true},
		{"unreachable", syscall.ENETUNREACH, true},
		{"postgres starting up", &pgconn.PgError{Code: "57P03"}, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"bad password", &pgconn.PgError{Code: "28P01"}, false},
		{"generic", errors.New("unknown driver"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 50; i++ {
		got := addJitter(base, 0.1)
		if got < base || got > base+10*time.Millisecond {
			t.Fatalf("addJitter = %v, out of [%v, %v]", got, base, base+10*time.Millisecond)
		}
	}
	if addJitter(base, 0) != base {
		t.Error("zero fraction must not add jitter")
	}
}
