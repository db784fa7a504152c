package entry

import (
	"net/http"

	"daily-journal/internal/handler/http/respond"
	entryUC "daily-journal/internal/usecase/entry"
)

type UpdateHandler struct{ Svc *entryUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	e, err := h.Svc.UpdateByID(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, r, err, failure{
			notFound:   msgEntryNotFound,
			validation: msgContentRequired,
			internal:   "Failed to update journal entry",
		})
		return
	}
	respond.OK(w, http.StatusOK, msgUpdated, toDTO(e))
}
