package handler

import (
	"time"

	"github.com/jotterhq/jotter/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the server.
type UserDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// SessionDTO is the JSON representation of a session.
type SessionDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ExpiresAt string `json:"expiresAt"`
	CreatedAt string `json:"createdAt"`
}

func toSessionDTO(s *domain.Session) SessionDTO {
	return SessionDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

// NoteDTO is the JSON representation of a note. UpdatedAt is null for
// notes that were never edited.
type NoteDTO struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Content   string  `json:"content"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

func toNoteDTO(n *domain.Note) NoteDTO {
	dto := NoteDTO{
		ID:        n.ID,
		UserID:    n.UserID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.UpdatedAt != nil {
		t := n.UpdatedAt.Format(time.RFC3339)
		dto.UpdatedAt = &t
	}
	return dto
}

func toNoteDTOs(notes []domain.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i := range notes {
		dtos[i] = toNoteDTO(&notes[i])
	}
	return dtos
}
