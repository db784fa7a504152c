package entry

import (
	"net/http"

	"daily-journal/internal/handler/http/respond"
	entryUC "daily-journal/internal/usecase/entry"
)

type StatsHandler struct{ Svc *entryUC.Service }

func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st, err := h.Svc.Stats(r.Context())
	if err != nil {
		writeError(w, r, err, failure{internal: "Failed to fetch statistics"})
		return
	}
	respond.OK(w, http.StatusOK, "", toStatsDTO(st))
}
