// Package respond writes the JSON envelope every journal API response is wrapped in.
// Internal error details are sanitized before they reach the log and never reach the client.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response body: {success, message?, data?, count?}.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; nothing left to do but log.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// OK writes a success envelope carrying data and an optional message.
func OK(w http.ResponseWriter, code int, message string, data any) {
	JSON(w, code, Envelope{Success: true, Message: message, Data: data})
}

// List writes a success envelope for a collection, with count set to len(items).
func List[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	JSON(w, http.StatusOK, Envelope{Success: true, Data: items, Count: &n})
}

// Fail writes an error envelope with a client-safe message.
func Fail(w http.ResponseWriter, code int, message string) {
	JSON(w, code, Envelope{Success: false, Message: message})
}

// Internal logs err (sanitized) and writes a 500 envelope carrying only message.
func Internal(w http.ResponseWriter, logger *slog.Logger, message string, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("internal server error",
		slog.Int("code", http.StatusInternalServerError),
		slog.String("user_message", message),
		slog.String("error", SanitizeError(err)))
	Fail(w, http.StatusInternalServerError, message)
}
