package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"daily-journal/internal/handler/http/respond"
)

// RateLimiter is a token bucket shared by every request to the wrapped handler.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows rps requests per second with bursts of up to burst requests.
// A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Middleware rejects requests with 429 and a Retry-After header once the bucket is empty.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := rl.limiter.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			slog.Warn("rate limit exceeded",
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))
			w.Header().Set("Retry-After", strconv.Itoa(int(delay.Round(time.Second)/time.Second)+1))
			respond.Fail(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
