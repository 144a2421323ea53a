package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jotterhq/jotter/internal/domain"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

type contextKey string

const (
	userContextKey    contextKey = "user"
	sessionContextKey contextKey = "session"
)

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// SessionFromContext extracts the resolved session from the request context.
// Returns nil if no session was resolved.
func SessionFromContext(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return session
}

// RequireSession is middleware that protects routes requiring
// authentication. It reads the session_id cookie, looks up the session
// and its user in one query, and injects both into the request context.
// An expired session is deleted on the spot (expiry cleanup is lazy,
// there is no background purge) and treated the same as a missing one.
func RequireSession(sessions domain.SessionRepository, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		session, user, err := sessions.GetWithUser(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				slog.Error("resolve session", "error", err)
				writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
				return
			}
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if session.Expired(time.Now()) {
			if err := sessions.Delete(r.Context(), session.ID); err != nil {
				slog.Error("delete expired session", "error", err)
			}
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
