package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jotterhq/jotter/internal/domain"
)

// Pagination bounds for note listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// NotePage is one page of a user's notes plus the pagination envelope.
type NotePage struct {
	Notes       []domain.Note
	TotalPages  int
	CurrentPage int
}

// NoteService handles note CRUD and substring search, always scoped to
// the owning user.
type NoteService struct {
	notes domain.NoteRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes domain.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// Create creates a note for the user after validating content length.
func (s *NoteService) Create(ctx context.Context, userID, content string) (*domain.Note, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	note := &domain.Note{
		UserID:  userID,
		Content: content,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// Update rewrites a note's content and stamps updated_at. Ownership is
// enforced in the repository; a foreign note reads as ErrNotFound.
func (s *NoteService) Update(ctx context.Context, userID, id, content string) (*domain.Note, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	return s.notes.Update(ctx, userID, id, content)
}

// Delete removes a note owned by the user.
func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	return s.notes.Delete(ctx, userID, id)
}

// List returns one page of the user's notes, newest first.
func (s *NoteService) List(ctx context.Context, userID string, page, pageSize int) (*NotePage, error) {
	page, pageSize = normalizePage(page, pageSize)

	notes, err := s.notes.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	total, err := s.notes.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}

	return &NotePage{
		Notes:       notes,
		TotalPages:  totalPages(total, pageSize),
		CurrentPage: page,
	}, nil
}

// Search returns one page of the user's notes whose content contains the
// query as a case-insensitive substring, newest first.
func (s *NoteService) Search(ctx context.Context, userID, query string, page, pageSize int) (*NotePage, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}
	page, pageSize = normalizePage(page, pageSize)

	notes, err := s.notes.SearchByUser(ctx, userID, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}

	total, err := s.notes.CountSearchByUser(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("count search notes: %w", err)
	}

	return &NotePage{
		Notes:       notes,
		TotalPages:  totalPages(total, pageSize),
		CurrentPage: page,
	}, nil
}

func validateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < domain.NoteContentMinLen {
		return fmt.Errorf("%w: note content is required", domain.ErrInvalidInput)
	}
	if n > domain.NoteContentMaxLen {
		return fmt.Errorf("%w: note content must be at most %d characters", domain.ErrInvalidInput, domain.NoteContentMaxLen)
	}
	return nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func totalPages(total, pageSize int) int {
	return (total + pageSize - 1) / pageSize
}
