// Package middleware provides cross-cutting HTTP middleware for the journal API:
// CORS handling for the browser client and token-bucket rate limiting.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins. "*" allows any origin.
	AllowedOrigins []string

	// Default: GET, POST, PUT, DELETE, OPTIONS
	AllowedMethods []string

	// Default: Content-Type, X-Request-ID
	AllowedHeaders []string

	// MaxAge is how long preflight results can be cached, in seconds.
	MaxAge int

	Logger *slog.Logger
}

// DefaultCORSConfig returns a config for the given origins with the journal API's methods and headers.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

type originMatcher struct {
	any     bool
	allowed map[string]bool
}

func newOriginMatcher(origins []string) originMatcher {
	m := originMatcher{allowed: make(map[string]bool, len(origins))}
	for _, o := range origins {
		o = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
		switch o {
		case "":
		case "*":
			m.any = true
		default:
			m.allowed[o] = true
		}
	}
	return m
}

func (m originMatcher) match(origin string) bool {
	return m.any || m.allowed[strings.TrimSuffix(strings.ToLower(origin), "/")]
}

// CORS returns middleware that sets CORS headers for allowed origins.
//
// Behavior:
//   - No Origin header: same-origin request, passed through untouched
//   - Origin not allowed: logged at warn, passed through without CORS headers
//   - Allowed preflight (OPTIONS): answered with 204 and the next handler is not called
//   - Allowed actual request: Access-Control-Allow-Origin set, passed through
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	matcher := newOriginMatcher(config.AllowedOrigins)
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !matcher.match(origin) {
				logger.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			if matcher.any {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
