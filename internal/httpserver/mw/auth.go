package mw

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/BalajiAXG/BookMark-Repo/internal/auth"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
)

type contextKey string

const sessionKey contextKey = "markd.session"

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(ctx context.Context) (*auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*auth.Session)
	return s, ok
}

// BearerToken extracts the caller's token: the Authorization header
// first, then the token query parameter (EventSource cannot set
// headers).
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	return r.URL.Query().Get("token")
}

// RequireSession resolves the bearer token to a session and stores it
// in the request context. An absent session is answered with 401 and a
// login pointer; it is a routing outcome, not a server error.
func RequireSession(sessions auth.Provider, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.SessionFromToken(r.Context(), BearerToken(r))
			if err != nil {
				log.Error("session lookup failed", logger.Error(err))
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			if sess == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "no session",
					"login": "/login",
				})
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
