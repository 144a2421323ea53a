package domain

import (
	"context"
	"time"
)

// Note is a short journal entry owned by exactly one user.
// UpdatedAt is nil until the note is edited for the first time.
type Note struct {
	ID        string
	UserID    string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Note content length bounds, in characters.
const (
	NoteContentMinLen = 1
	NoteContentMaxLen = 1000
)

// NoteRepository defines persistence operations for notes. All reads and
// writes are scoped to the owning user; a note belonging to someone else
// is indistinguishable from a missing one.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	Update(ctx context.Context, userID, id, content string) (*Note, error)
	Delete(ctx context.Context, userID, id string) error
	// ListByUser returns notes ordered by creation time, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Note, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// SearchByUser matches notes whose content contains the query as a
	// case-insensitive substring, newest first.
	SearchByUser(ctx context.Context, userID, query string, limit, offset int) ([]Note, error)
	CountSearchByUser(ctx context.Context, userID, query string) (int, error)
}
