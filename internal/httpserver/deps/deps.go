package deps

import (
	"context"
	"time"

	"github.com/BalajiAXG/BookMark-Repo/internal/auth"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
	"github.com/BalajiAXG/BookMark-Repo/internal/session"
)

// Counter answers per-user bookmark counts without a full select.
type Counter interface {
	Count(ctx context.Context, userID string) (int, error)
}

type Deps struct {
	Logger     logger.Logger
	StartTime  time.Time
	Version    string
	Commit     string
	BuildDate  string
	GoVersion  string
	TrustProxy bool // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Sessions auth.Provider       // bearer token -> session lookup
	Remote   session.RemoteStore // persistent bookmark store
	Counter  Counter             // bookmark counts for the profile view
	Channel  session.Channel     // change-event subscriptions for live views

	Ping func(ctx context.Context) error // readiness probe against the backing store

	RateLimitBurst  int // token bucket size per client IP on mutation routes
	RateLimitPerMin int // refill rate per client IP per minute
}
