package handlers

import (
	"net/http"

	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/mw"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
)

// SignOut invalidates the caller's token. Signing out an already-dead
// token succeeds; the outcome is the same either way.
func SignOut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := mw.BearerToken(r)
		if token == "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if err := d.Sessions.SignOut(r.Context(), token); err != nil {
			d.Logger.Error("sign out failed", logger.Error(err))
			writeError(w, http.StatusBadGateway, "failed to sign out")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
