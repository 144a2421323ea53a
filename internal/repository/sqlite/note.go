package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jotterhq/jotter/internal/domain"
)

// NoteRepository implements domain.NoteRepository using SQLite.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new SQLite-backed NoteRepository.
func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db.SqlDB}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, NULL)`,
		id, note.UserID, note.Content, now,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	note.ID = id
	note.CreatedAt = now
	note.UpdatedAt = nil
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, userID, id, content string) (*domain.Note, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE notes SET content = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		content, now, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.getByID(ctx, userID, id)
}

func (r *NoteRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, content, created_at, updated_at
		 FROM notes WHERE user_id = ?
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *NoteRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}

func (r *NoteRepository) SearchByUser(ctx context.Context, userID, query string, limit, offset int) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, content, created_at, updated_at
		 FROM notes WHERE user_id = ? AND content LIKE ? ESCAPE '\'
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		userID, likePattern(query), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func (r *NoteRepository) CountSearchByUser(ctx context.Context, userID, query string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE user_id = ? AND content LIKE ? ESCAPE '\'`,
		userID, likePattern(query),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count search notes: %w", err)
	}
	return count, nil
}

func (r *NoteRepository) getByID(ctx context.Context, userID, id string) (*domain.Note, error) {
	note := &domain.Note{}
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, content, created_at, updated_at
		 FROM notes WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&note.ID, &note.UserID, &note.Content, &note.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query note by id: %w", err)
	}
	if updatedAt.Valid {
		note.UpdatedAt = &updatedAt.Time
	}
	return note, nil
}

func scanNotes(rows *sql.Rows) ([]domain.Note, error) {
	var notes []domain.Note
	for rows.Next() {
		var note domain.Note
		var updatedAt sql.NullTime
		if err := rows.Scan(&note.ID, &note.UserID, &note.Content, &note.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if updatedAt.Valid {
			note.UpdatedAt = &updatedAt.Time
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// likePattern builds a substring LIKE pattern, escaping the LIKE
// metacharacters in the user's query. SQLite's LIKE is case-insensitive
// for ASCII, matching the substring-search contract.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}
