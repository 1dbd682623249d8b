package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/handlers"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	limited := r.With(
		mw.RequireSession(d.Sessions, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateLimitBurst,
			RefillPerIPPerMin: d.RateLimitPerMin,
			TrustProxy:        d.TrustProxy,
		}),
	)
	limited.Post("/api/bookmarks", handlers.AddBookmark(d))
	limited.Patch("/api/bookmarks/{id}", handlers.UpdateBookmark(d))
	limited.Delete("/api/bookmarks/{id}", handlers.DeleteBookmark(d))
}
