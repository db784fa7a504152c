package entry

import (
	"net/http"

	"daily-journal/internal/handler/http/respond"
	entryUC "daily-journal/internal/usecase/entry"
)

type ListHandler struct{ Svc *entryUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		writeError(w, r, err, failure{internal: "Failed to fetch journal entries"})
		return
	}
	respond.OK(w, http.StatusOK, "", toDTOs(list))
}
