package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/handlers"
)

func init() { Register(registerSignOut) }

func registerSignOut(r chi.Router, d deps.Deps) {
	r.Post("/api/signout", handlers.SignOut(d))
}
