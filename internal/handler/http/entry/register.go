package entry

import (
	"net/http"

	entryUC "daily-journal/internal/usecase/entry"
)

// Register registers the journal API routes with the given mux.
// Any other path under /api/ gets the not-found envelope.
func Register(mux *http.ServeMux, svc *entryUC.Service) {
	mux.Handle("GET /api/entries", ListHandler{svc})
	mux.Handle("POST /api/entries", SaveHandler{svc})
	mux.Handle("GET /api/entries/{date}", GetHandler{svc})
	mux.Handle("PUT /api/entries/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /api/entries/{id}", DeleteHandler{svc})

	mux.Handle("GET /api/stats", StatsHandler{svc})
	mux.Handle("GET /api/search", SearchHandler{svc})

	mux.HandleFunc("/api/", NotFound)
}
