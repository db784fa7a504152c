package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"daily-journal/internal/handler/http/pathutil"
	"daily-journal/internal/handler/http/responsewriter"
)

// Middleware creates OpenTelemetry tracing middleware for HTTP handlers.
// It extracts W3C trace context from the request, starts a server span named after the
// normalized route (e.g. "PUT /api/entries/:id"), and sets X-Trace-Id on the response.
// Spans for 5xx responses are marked with error=true.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(
			r.Context(),
			propagation.HeaderCarrier(r.Header),
		)

		route := pathutil.NormalizePath(r.URL.Path)
		ctx, span := GetTracer().Start(ctx, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		w.Header().Set("X-Trace-Id", span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		span.SetAttributes(
			attribute.Int("http.status_code", rw.StatusCode()),
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.String("http.path", r.URL.Path),
		)
		if rw.StatusCode() >= 500 {
			span.SetAttributes(attribute.Bool("error", true))
		}
	})
}
