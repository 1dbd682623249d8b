package auth

import (
	"context"
	"time"
)

// Session is an authenticated identity as seen by this service.
// Session issuance belongs to the external identity provider; this
// package only reads what it wrote.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Provider resolves bearer tokens to sessions.
//
// "No session" is a defined outcome, not an error: SessionFromToken
// returns (nil, nil) for unknown or expired tokens so callers can
// route to the login entry point.
type Provider interface {
	SessionFromToken(ctx context.Context, token string) (*Session, error)
	SignOut(ctx context.Context, token string) error
}
