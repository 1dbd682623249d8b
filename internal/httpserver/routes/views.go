package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/handlers"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/mw"
)

func init() { Register(registerViews) }

func registerViews(r chi.Router, d deps.Deps) {
	authed := r.With(mw.RequireSession(d.Sessions, d.Logger))
	authed.Get("/api/dashboard", handlers.Dashboard(d))
	authed.Get("/api/folders", handlers.Folders(d))
	authed.Get("/api/profile", handlers.Profile(d))
}
