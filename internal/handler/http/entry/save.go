package entry

import (
	"net/http"
	"strings"

	"daily-journal/internal/domain/entity"
	"daily-journal/internal/handler/http/respond"
	entryUC "daily-journal/internal/usecase/entry"
)

// SaveHandler creates the entry for a date, or updates it if one exists.
// Responds 201 on create and 200 on update.
type SaveHandler struct{ Svc *entryUC.Service }

func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date    string `json:"date"`
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Date == "" || req.Content == "" {
		respond.Fail(w, http.StatusBadRequest, msgDateAndContent)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Fail(w, http.StatusBadRequest, msgContentEmpty)
		return
	}

	e, outcome, err := h.Svc.Upsert(r.Context(), req.Date, req.Content)
	if err != nil {
		writeError(w, r, err, failure{internal: "Failed to save journal entry"})
		return
	}
	if outcome == entity.OutcomeCreated {
		respond.OK(w, http.StatusCreated, msgCreated, toDTO(e))
		return
	}
	respond.OK(w, http.StatusOK, msgUpdated, toDTO(e))
}
