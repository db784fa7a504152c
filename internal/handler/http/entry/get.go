package entry

import (
	"net/http"

	"daily-journal/internal/handler/http/respond"
	entryUC "daily-journal/internal/usecase/entry"
)

type GetHandler struct{ Svc *entryUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e, err := h.Svc.GetByDate(r.Context(), r.PathValue("date"))
	if err != nil {
		writeError(w, r, err, failure{
			notFound: msgNoEntryForDate,
			internal: "Failed to fetch journal entry",
		})
		return
	}
	respond.OK(w, http.StatusOK, "", toDTO(e))
}
