package entry

import (
	"net/http"

	"daily-journal/internal/handler/http/respond"
	entryUC "daily-journal/internal/usecase/entry"
)

type DeleteHandler struct{ Svc *entryUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteByID(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err, failure{
			notFound: msgEntryNotFound,
			internal: "Failed to delete journal entry",
		})
		return
	}
	respond.OK(w, http.StatusOK, msgDeleted, nil)
}
