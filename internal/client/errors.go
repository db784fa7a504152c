package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError is a non-success envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string

	// RetryAfter is set for 429 responses.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("journal api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a 400 from the API.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}
