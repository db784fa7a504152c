package entry

import (
	"net/http"

	"daily-journal/internal/handler/http/respond"
	entryUC "daily-journal/internal/usecase/entry"
)

type SearchHandler struct{ Svc *entryUC.Service }

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err, failure{internal: "Failed to search entries"})
		return
	}
	respond.List(w, toDTOs(list))
}
