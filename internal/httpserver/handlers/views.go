package handlers

import (
	"net/http"

	"github.com/BalajiAXG/BookMark-Repo/internal/collection"
	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/mw"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
)

type dashboardResponse struct {
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}

type foldersResponse struct {
	Folders []collection.Folder `json:"folders"`
}

type profileResponse struct {
	Email         string `json:"email"`
	BookmarkCount int    `json:"bookmark_count"`
}

// hydrate fetches the caller's collection into a fresh cache. Each GET
// is its own fetch; live updates come over the stream endpoint instead.
func hydrate(d deps.Deps, r *http.Request, userID string) (*collection.Collection, error) {
	records, err := d.Remote.Select(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	coll := collection.New()
	coll.Replace(records)
	return coll, nil
}

// Dashboard returns the most recent bookmarks, newest first.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.SessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no session")
			return
		}

		coll, err := hydrate(d, r, sess.UserID)
		if err != nil {
			d.Logger.Error("dashboard fetch failed",
				logger.String("user_id", sess.UserID),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "failed to fetch bookmarks")
			return
		}

		writeJSON(w, http.StatusOK, dashboardResponse{
			Bookmarks: coll.Recent(collection.DashboardLimit),
		})
	}
}

// Folders returns the collection bucketed by category. Every category
// appears even when empty, in declared order.
func Folders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.SessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no session")
			return
		}

		coll, err := hydrate(d, r, sess.UserID)
		if err != nil {
			d.Logger.Error("folders fetch failed",
				logger.String("user_id", sess.UserID),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "failed to fetch bookmarks")
			return
		}

		writeJSON(w, http.StatusOK, foldersResponse{
			Folders: coll.GroupByCategory(),
		})
	}
}

// Profile returns the caller's identity plus a bookmark count.
func Profile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.SessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no session")
			return
		}

		count, err := d.Counter.Count(r.Context(), sess.UserID)
		if err != nil {
			d.Logger.Error("profile count failed",
				logger.String("user_id", sess.UserID),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "failed to count bookmarks")
			return
		}

		writeJSON(w, http.StatusOK, profileResponse{
			Email:         sess.Email,
			BookmarkCount: count,
		})
	}
}
