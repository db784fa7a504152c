package entry

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"daily-journal/internal/handler/http/respond"
)

// decodeBody decodes the JSON request body into v. An empty body leaves v at its
// zero value so field checks report what is missing. On failure it writes the
// error envelope and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respond.Fail(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	respond.Fail(w, http.StatusBadRequest, msgInvalidData)
	return false
}
