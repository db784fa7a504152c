// Package tracing provides OpenTelemetry tracing for the HTTP facade.
//
// Setup installs an SDK tracer provider and the W3C propagator so every request gets a
// trace id even without an exporter; the id is returned in the X-Trace-Id header and
// written to the request log.
//
//	shutdown := tracing.Setup()
//	defer shutdown(context.Background())
//	handler = tracing.Middleware(handler)
package tracing
