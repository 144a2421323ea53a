package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jotterhq/jotter/internal/domain"
)

// Password length bounds, in bytes.
const (
	passwordMinLen = 8
	passwordMaxLen = 255
)

// AuthService handles registration, login, logout, and password changes.
// Sessions are opaque database rows; there is nothing to sign or parse.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	hasher   *PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, hasher *PasswordHasher) *AuthService {
	return &AuthService{users: users, sessions: sessions, hasher: hasher}
}

// Register creates a new user account. The duplicate check is
// case-insensitive; the stored email keeps its original casing.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}

	// The repository maps a unique-index violation to ErrUserExists, so
	// a registration racing past the check above still fails the same way.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and creates a new session with the fixed
// TTL. Unknown email and wrong password fail identically so the error
// does not leak which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.ID, domain.SessionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return session, user, nil
}

// Logout deletes the session row. The cookie is cleared by the handler.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ChangePassword verifies the old password and overwrites the stored
// hash. Existing sessions for the user stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	ok, err := s.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domain.ErrInvalidPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 ||
		strings.ContainsAny(email, " \t") || len(email) > 255 {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < passwordMinLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, passwordMinLen)
	}
	if len(password) > passwordMaxLen {
		return fmt.Errorf("%w: password must be at most %d characters", domain.ErrInvalidInput, passwordMaxLen)
	}
	return nil
}
