package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jotterhq/jotter/internal/domain"
	"github.com/jotterhq/jotter/internal/repository/sqlite"
)

func createTestUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "hash"}
	if err := sqlite.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestSessionRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	user := createTestUser(t, db, "session@example.com")

	session, err := repo.Create(context.Background(), user.ID, domain.SessionTTL)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if session.ID == "" {
		t.Fatal("expected session ID to be set")
	}
	if session.UserID != user.ID {
		t.Fatalf("expected user ID %q, got %q", user.ID, session.UserID)
	}
	if got := session.ExpiresAt.Sub(session.CreatedAt); got != domain.SessionTTL {
		t.Fatalf("expected expiry exactly created_at + %v, got +%v", domain.SessionTTL, got)
	}
}

func TestSessionRepository_GetWithUser(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	user := createTestUser(t, db, "join@example.com")

	created, err := repo.Create(context.Background(), user.ID, domain.SessionTTL)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	session, owner, err := repo.GetWithUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetWithUser: %v", err)
	}
	if session.ID != created.ID {
		t.Fatalf("expected session %q, got %q", created.ID, session.ID)
	}
	if owner.ID != user.ID || owner.Email != user.Email {
		t.Fatalf("expected owning user %q, got %+v", user.Email, owner)
	}
	if d := session.ExpiresAt.Sub(created.ExpiresAt); d < -time.Second || d > time.Second {
		t.Fatalf("expected expiry %v, got %v", created.ExpiresAt, session.ExpiresAt)
	}
}

func TestSessionRepository_GetWithUser_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)

	_, _, err := repo.GetWithUser(context.Background(), "no-such-session")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	user := createTestUser(t, db, "delete@example.com")

	session, err := repo.Create(context.Background(), user.ID, domain.SessionTTL)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(context.Background(), session.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, _, err = repo.GetWithUser(context.Background(), session.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSessionRepository_Create_NegativeTTLIsExpired(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	user := createTestUser(t, db, "expired@example.com")

	session, err := repo.Create(context.Background(), user.ID, -time.Hour)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !session.Expired(time.Now()) {
		t.Fatal("expected session with negative TTL to be expired")
	}
}
