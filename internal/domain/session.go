package domain

import (
	"context"
	"time"
)

// Session is a server-side login session. Its ID doubles as the bearer
// token carried in the session cookie, so it must be generated with
// cryptographically strong randomness.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionTTL is the fixed lifetime of a session, counted from creation.
// Expiry is absolute: a session is never renewed on use.
const SessionTTL = 7 * 24 * time.Hour

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	// Create inserts a new session for the user with
	// expires_at = now + ttl.
	Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error)
	// GetWithUser fetches a session and its owning user in one lookup.
	GetWithUser(ctx context.Context, id string) (*Session, *User, error)
	Delete(ctx context.Context, id string) error
}
