package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/mw"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
	"github.com/BalajiAXG/BookMark-Repo/internal/session"
)

const streamKeepAlive = 25 * time.Second

type snapshotPayload struct {
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}

// Stream serves a live view over SSE. Each connection runs its own
// sync session: authenticate, fetch the full collection, subscribe to
// the change feed, then push a fresh snapshot on every reconciled
// change. Disconnecting tears the session down; a reconnect starts
// from scratch.
func Stream(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		mode := session.ModeIncremental
		if r.URL.Query().Get("mode") == "refetch" {
			mode = session.ModeRefetch
		}

		// Coalescing signal: bursts of events collapse into one
		// snapshot push.
		notify := make(chan struct{}, 1)

		ctrl := session.NewController(session.Config{
			Sessions: d.Sessions,
			Remote:   d.Remote,
			Channel:  d.Channel,
			Policies: session.DefaultPolicies(),
			Mode:     mode,
			Logger:   d.Logger,
			OnChange: func() {
				select {
				case notify <- struct{}{}:
				default:
				}
			},
		})
		defer ctrl.Close()

		if err := ctrl.Start(r.Context(), mw.BearerToken(r)); err != nil {
			d.Logger.Error("stream session failed to start", logger.Error(err))
			writeError(w, http.StatusBadGateway, "failed to start session")
			return
		}
		if ctrl.State() == session.StateUnauthenticated {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "no session",
				"login": "/login",
			})
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		pushSnapshot(w, flusher, ctrl)

		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-notify:
				pushSnapshot(w, flusher, ctrl)
			case <-keepAlive.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}

func pushSnapshot(w http.ResponseWriter, flusher http.Flusher, ctrl *session.Controller) {
	data, err := json.Marshal(snapshotPayload{Bookmarks: ctrl.Snapshot()})
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
	flusher.Flush()
}
