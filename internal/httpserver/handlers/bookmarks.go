package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/BalajiAXG/BookMark-Repo/internal/collection"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/mw"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
	"github.com/BalajiAXG/BookMark-Repo/internal/session"
	redisstore "github.com/BalajiAXG/BookMark-Repo/internal/store/redis"
)

type addBookmarkRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type updateBookmarkRequest struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

// sessionStore builds a per-request session store. Mutations don't need
// a hydrated collection: adds and updates apply the confirmed record,
// and the live views converge through the change feed.
func sessionStore(d deps.Deps, userID string) *session.Store {
	return session.NewStore(userID, collection.New(), d.Remote, session.DefaultPolicies(), d.Logger)
}

func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.SessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no session")
			return
		}

		var req addBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		b, err := sessionStore(d, sess.UserID).Add(r.Context(), req.URL, req.Name)
		if err != nil {
			d.Logger.Error("add bookmark failed",
				logger.String("user_id", sess.UserID),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "failed to add bookmark")
			return
		}

		writeJSON(w, http.StatusCreated, b)
	}
}

func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.SessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no session")
			return
		}

		id := chi.URLParam(r, "id")

		var req updateBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == nil && req.URL == nil {
			writeError(w, http.StatusBadRequest, "nothing to update")
			return
		}
		if req.URL != nil && strings.TrimSpace(*req.URL) == "" {
			writeError(w, http.StatusBadRequest, "url cannot be empty")
			return
		}

		b, err := sessionStore(d, sess.UserID).Update(r.Context(), id, req.Name, req.URL)
		if err != nil {
			if errors.Is(err, redisstore.ErrNotFound) {
				writeError(w, http.StatusNotFound, "bookmark not found")
				return
			}
			d.Logger.Error("update bookmark failed",
				logger.String("user_id", sess.UserID),
				logger.String("bookmark_id", id),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "failed to update bookmark")
			return
		}

		writeJSON(w, http.StatusOK, b)
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.SessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no session")
			return
		}

		id := chi.URLParam(r, "id")

		if err := sessionStore(d, sess.UserID).Remove(r.Context(), id); err != nil {
			d.Logger.Error("delete bookmark failed",
				logger.String("user_id", sess.UserID),
				logger.String("bookmark_id", id),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "failed to delete bookmark")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
