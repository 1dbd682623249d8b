package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports readiness: the service can serve bookmarks only when
// the backing store answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if d.Ping != nil {
			if err := d.Ping(r.Context()); err != nil {
				d.Logger.Warn("readiness probe failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(readyzResponse{Ready: false})
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: true})
	}
}
