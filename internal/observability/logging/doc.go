// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the journal service.
//
// Example usage:
//
//	logger := logging.NewLogger(logging.Options{Level: "info", Format: "json"})
//	logger.Info("server starting", slog.String("addr", ":3000"))
//
//	func handle(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("processing request")
//	}
package logging
