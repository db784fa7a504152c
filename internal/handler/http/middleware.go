package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"daily-journal/internal/handler/http/pathutil"
	"daily-journal/internal/handler/http/requestid"
	"daily-journal/internal/handler/http/respond"
	"daily-journal/internal/handler/http/responsewriter"
	"daily-journal/internal/observability/logging"

	"go.opentelemetry.io/otel/trace"
)

// Logging returns middleware that logs one structured record per request.
// The record carries the request ID and the OpenTelemetry trace ID so logs can be
// correlated with traces. A request-scoped logger is stored in the context for handlers.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			reqLogger := logging.WithRequestID(r.Context(), logger)
			next.ServeHTTP(wrapped, r.WithContext(logging.WithLogger(r.Context(), reqLogger)))

			traceID := ""
			if sc := trace.SpanFromContext(r.Context()).SpanContext(); sc.HasTraceID() {
				traceID = sc.TraceID().String()
			}
			duration := time.Since(start)

			level := slog.LevelInfo
			if wrapped.StatusCode() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", pathutil.NormalizePath(r.URL.Path)),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that turns a panic into a 500 envelope and logs the stack.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := responsewriter.Wrap(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				if !wrapped.HeaderWritten() {
					respond.Fail(wrapped, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(wrapped, r)
		})
	}
}

// LimitRequestBody returns middleware that caps request bodies at maxBytes.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Chain applies middleware so that the first one listed is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
