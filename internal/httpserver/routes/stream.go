package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/handlers"
)

func init() { Register(registerStream) }

// The stream endpoint authenticates through its own sync session, so
// no session middleware here.
func registerStream(r chi.Router, d deps.Deps) {
	r.Get("/api/stream", handlers.Stream(d))
}
