package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig(timeout time.Duration) Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      2,
		Interval:         10 * time.Second,
		Timeout:          timeout,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig(time.Second))

	if cb.Name() != "test-circuit" {
		t.Errorf("Name() = %q, want %q", cb.Name(), "test-circuit")
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("initial state = %v, want Closed", cb.State())
	}
}

func TestCircuitBreaker_TripsOpen(t *testing.T) {
	cb := New(testConfig(time.Minute))
	testErr := errors.New("connection refused")

	// 4 failures + 1 success = 80% failure rate over 5 requests
	for i := 0; i < 4; i++ {
		if err := cb.Run(func() error { return testErr }); !errors.Is(err, testErr) {
			t.Fatalf("request %d: err = %v, want %v", i, err, testErr)
		}
	}
	if err := cb.Run(func() error { return nil }); err != nil {
		t.Fatalf("success call: %v", err)
	}
	if cb.IsOpen() {
		t.Fatal("breaker opened on a success; the ratio is only checked after a failure")
	}

	// The trip check runs on the next failure: 5 of 6 failed.
	if err := cb.Run(func() error { return testErr }); !errors.Is(err, testErr) {
		t.Fatalf("sixth request: err = %v, want %v", err, testErr)
	}

	if !cb.IsOpen() {
		t.Fatalf("state = %v, want Open", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		t.Error("function should not be called when circuit is open")
		return nil, nil
	})
	if !errors.Is(err, ErrOpen) {
		t.Errorf("err = %v, want ErrOpen", err)
	}
}

func TestCircuitBreaker_CanceledContextIsNotAFailure(t *testing.T) {
	cb := New(testConfig(time.Minute))

	for i := 0; i < 10; i++ {
		_ = cb.Run(func() error { return context.Canceled })
	}

	if cb.IsOpen() {
		t.Error("caller cancellations must not trip the breaker")
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := New(testConfig(100 * time.Millisecond))
	for i := 0; i < 6; i++ {
		_ = cb.Run(func() error { return errors.New("down") })
	}
	if !cb.IsOpen() {
		t.Fatalf("state = %v, want Open", cb.State())
	}

	time.Sleep(150 * time.Millisecond)

	if err := cb.Run(func() error { return nil }); err != nil {
		t.Errorf("half-open probe: %v", err)
	}
	if cb.IsOpen() {
		t.Errorf("state = %v after successful probe", cb.State())
	}
}

func TestStoreConfig(t *testing.T) {
	cfg := StoreConfig("postgres")

	if cfg.Name != "postgres" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.FailureThreshold != 1.0 || cfg.MinRequests != 5 {
		t.Errorf("threshold = %v, min = %d; want 1.0, 5", cfg.FailureThreshold, cfg.MinRequests)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}
