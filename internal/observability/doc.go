// Package observability groups the journal's observability infrastructure:
// structured logging, Prometheus metrics and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: journal business metrics and the scheduled stats refresher
//   - tracing: HTTP server spans and the shared tracer
package observability
