package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jotterhq/jotter/internal/domain"
	"github.com/jotterhq/jotter/internal/service"
)

// NoteHandler handles note-related HTTP requests. All routes require an
// authenticated session.
type NoteHandler struct {
	notes *service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// HandleList returns one page of the user's notes, newest first.
// GET /api/notes?page=1&pageSize=10
// Response: {"notes":[...],"totalPages":n,"currentPage":p}
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	page, pageSize := pageParams(r)

	result, err := h.notes.List(r.Context(), user.ID, page, pageSize)
	if err != nil {
		slog.Error("list notes", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeNotePage(w, result)
}

// HandleSearch returns notes whose content contains the query as a
// case-insensitive substring.
// GET /api/notes/search?query=...&page=1&pageSize=10
// Response: {"notes":[...],"totalPages":n,"currentPage":p}
func (h *NoteHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	page, pageSize := pageParams(r)

	result, err := h.notes.Search(r.Context(), user.ID, r.URL.Query().Get("query"), page, pageSize)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("search notes", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeNotePage(w, result)
}

// HandleCreate creates a note.
// POST /api/notes
// Request:  {"content":"..."}
// Response: {"note": {...}}
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	note, err := h.notes.Create(r.Context(), user.ID, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("create note", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"note": toNoteDTO(note),
	})
}

// HandleUpdate rewrites a note's content.
// PUT /api/notes/{id}
// Request:  {"content":"..."}
// Response: {"note": {...}}
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id := r.PathValue("id")

	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	note, err := h.notes.Update(r.Context(), user.ID, id, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Note not found.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("update note", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"note": toNoteDTO(note),
	})
}

// HandleDelete removes a note.
// DELETE /api/notes/{id}
// Response: 204 No Content
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.notes.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Note not found.")
			return
		}
		slog.Error("delete note", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeNotePage(w http.ResponseWriter, page *service.NotePage) {
	writeJSON(w, http.StatusOK, map[string]any{
		"notes":       toNoteDTOs(page.Notes),
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
	})
}

func pageParams(r *http.Request) (page, pageSize int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	pageSize, _ = strconv.Atoi(q.Get("pageSize"))
	return page, pageSize
}
