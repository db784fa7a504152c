package entry

import (
	"errors"
	"log/slog"
	"net/http"

	"daily-journal/internal/domain/entity"
	"daily-journal/internal/handler/http/respond"
	"daily-journal/internal/observability/logging"
	entryUC "daily-journal/internal/usecase/entry"
)

// Messages sent to clients.
const (
	msgCreated         = "Journal entry created successfully"
	msgUpdated         = "Journal entry updated successfully"
	msgDeleted         = "Journal entry deleted successfully"
	msgNoEntryForDate  = "No entry found for this date"
	msgEntryNotFound   = "Journal entry not found"
	msgDateAndContent  = "Date and content are required"
	msgContentEmpty    = "Content cannot be empty"
	msgContentRequired = "Content is required"
	msgQueryRequired   = "Search query is required"
	msgInvalidData     = "Invalid data provided"
	msgNotFoundRoute   = "API endpoint not found"
)

// failure describes how one handler reports errors from the service.
type failure struct {
	notFound   string // message for ErrEntryNotFound
	validation string // message for a ValidationError; "" means use the field message
	internal   string // message for anything else
}

// writeError maps service errors onto the envelope:
// ValidationError → 400, ErrEntryNotFound → 404, everything else → 500 with a fixed message.
func writeError(w http.ResponseWriter, r *http.Request, err error, f failure) {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		msg := f.validation
		if msg == "" {
			msg = validationMessage(ve)
		}
		respond.Fail(w, http.StatusBadRequest, msg)
	case errors.Is(err, entryUC.ErrEntryNotFound):
		respond.Fail(w, http.StatusNotFound, f.notFound)
	default:
		logger := logging.WithRequestID(r.Context(), logging.FromContext(r.Context()))
		respond.Internal(w, logger.With(slog.String("path", r.URL.Path)), f.internal, err)
	}
}

func validationMessage(ve *entity.ValidationError) string {
	switch {
	case ve.Field == "content":
		return msgContentEmpty
	case ve.Field == "date" && ve.Message == "is required":
		return msgDateAndContent
	case ve.Field == "q":
		return msgQueryRequired
	default:
		return msgInvalidData
	}
}

// NotFound answers any /api/* request no route matched.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	respond.Fail(w, http.StatusNotFound, msgNotFoundRoute)
}
