package handler

import (
	"net/http"

	"github.com/jotterhq/jotter/internal/domain"
	"github.com/jotterhq/jotter/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Protected
// routes are wrapped in RequireSession against the session repository.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	notes *service.NoteService,
	sessions domain.SessionRepository,
	loginLimiter *service.TokenBucket,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, loginLimiter, cookieSecure)
	noteHandler := NewNoteHandler(notes)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireSession(sessions, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.Handle("POST /api/auth/logout", protected(authHandler.HandleLogout))
	mux.Handle("POST /api/auth/change-password", protected(authHandler.HandleChangePassword))
	mux.Handle("GET /api/auth/me", protected(authHandler.HandleMe))

	mux.Handle("GET /api/notes", protected(noteHandler.HandleList))
	mux.Handle("GET /api/notes/search", protected(noteHandler.HandleSearch))
	mux.Handle("POST /api/notes", protected(noteHandler.HandleCreate))
	mux.Handle("PUT /api/notes/{id}", protected(noteHandler.HandleUpdate))
	mux.Handle("DELETE /api/notes/{id}", protected(noteHandler.HandleDelete))
}
