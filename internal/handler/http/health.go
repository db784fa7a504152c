// Package http provides the HTTP server plumbing for the journal API: health
// endpoints, Prometheus request metrics and the logging, recovery, body-limit and
// timeout middleware. Journal routes live in the entry subpackage.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PoolStatser is implemented by stores backed by a database/sql pool.
type PoolStatser interface {
	Stats() sql.DBStats
}

// HealthResponse represents the JSON response for the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler checks store connectivity and, for SQL stores, pool utilization.
// Returns 200 when healthy or degraded and 503 when the store is unreachable.
type HealthHandler struct {
	Store   Pinger
	Kind    string // postgres, sqlite or mongo
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	check := h.checkStore(ctx)
	status, code := "healthy", http.StatusOK
	if check.Status == "unhealthy" {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	writeHealth(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]CheckStatus{"store": check},
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkStore(ctx context.Context) CheckStatus {
	if h.Store == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if err := h.Store.Ping(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: "store unreachable"}
	}

	details := map[string]any{"kind": h.Kind}
	ps, ok := h.Store.(PoolStatser)
	if !ok {
		return CheckStatus{Status: "healthy", Details: details}
	}

	stats := ps.Stats()
	details["max_open_connections"] = stats.MaxOpenConnections
	details["open_connections"] = stats.OpenConnections
	details["in_use"] = stats.InUse
	details["idle"] = stats.Idle
	details["wait_count"] = stats.WaitCount
	details["wait_duration_ms"] = stats.WaitDuration.Milliseconds()

	// Zero means unlimited.
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: "healthy", Details: details}
	}
	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

func writeHealth(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("health: failed to encode response", slog.Any("error", err))
	}
}

// ReadyHandler answers readiness probes: 200 "ready" once the store responds to a ping.
type ReadyHandler struct {
	Store Pinger
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		http.Error(w, "store not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.Store.Ping(ctx); err != nil {
		http.Error(w, "store not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness probes. It always returns 200 "alive".
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
