package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/inklet/inklet-server/internal/logger"
	"github.com/inklet/inklet-server/internal/model"
)

// NoteService defines owner-scoped note operations.
type NoteService interface {
	CreateNote(ctx context.Context, params model.CreateNoteParams) (model.Note, error)
	UpdateNote(ctx context.Context, ownerID, noteID uuid.UUID, patch model.NotePatch) (model.Note, error)
	UpdatePin(ctx context.Context, ownerID, noteID uuid.UUID, isPinned *bool) (model.Note, error)
	DeleteNote(ctx context.Context, ownerID, noteID uuid.UUID) error
	ListNotes(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error)
	SearchNotes(ctx context.Context, ownerID uuid.UUID, query string) ([]model.Note, error)
}

// Note handles HTTP endpoints for notes.
type Note struct {
	noteService    NoteService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewNote creates a new Note handler.
func NewNote(noteService NoteService, contextManager model.ContextManager, logger *logger.Logger) *Note {
	return &Note{
		noteService:    noteService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type noteResponse struct {
	Error   bool       `json:"error"`
	Note    model.Note `json:"note"`
	Message string     `json:"message"`
}

type notesResponse struct {
	Error   bool         `json:"error"`
	Notes   []model.Note `json:"notes"`
	Message string       `json:"message"`
}

// AddNote creates a note for the authenticated user.
func (h *Note) AddNote(w http.ResponseWriter, req *http.Request) {
	identity, ok := h.identity(w, req)
	if !ok {
		return
	}

	var payload struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	note, err := h.noteService.CreateNote(req.Context(), model.CreateNoteParams{
		OwnerID: identity.ID,
		Title:   payload.Title,
		Content: payload.Content,
		Tags:    payload.Tags,
	})
	if err != nil {
		h.logger.Error("Note handler: add note failed",
			"owner_id", identity.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteResponse{Note: note, Message: "Note added successfully"})
}

// EditNote applies a partial update to one of the user's notes.
func (h *Note) EditNote(w http.ResponseWriter, req *http.Request) {
	identity, ok := h.identity(w, req)
	if !ok {
		return
	}
	noteID, ok := h.noteID(w, req)
	if !ok {
		return
	}

	var payload struct {
		Title    *string   `json:"title"`
		Content  *string   `json:"content"`
		Tags     *[]string `json:"tags"`
		IsPinned *bool     `json:"isPinned"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Title and content are non-empty by invariant; a present-but-empty
	// string counts as absent rather than clearing the field.
	if payload.Title != nil && *payload.Title == "" {
		payload.Title = nil
	}
	if payload.Content != nil && *payload.Content == "" {
		payload.Content = nil
	}

	note, err := h.noteService.UpdateNote(req.Context(), identity.ID, noteID, model.NotePatch{
		Title:    payload.Title,
		Content:  payload.Content,
		Tags:     payload.Tags,
		IsPinned: payload.IsPinned,
	})
	if err != nil {
		h.logger.Error("Note handler: edit note failed",
			"owner_id", identity.ID,
			"note_id", noteID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteResponse{Note: note, Message: "Note updated successfully"})
}

// GetAllNotes lists the user's notes, pinned first.
func (h *Note) GetAllNotes(w http.ResponseWriter, req *http.Request) {
	identity, ok := h.identity(w, req)
	if !ok {
		return
	}

	notes, err := h.noteService.ListNotes(req.Context(), identity.ID)
	if err != nil {
		h.logger.Error("Note handler: list notes failed",
			"owner_id", identity.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notesResponse{Notes: notes, Message: "Notes fetched successfully"})
}

// DeleteNote removes one of the user's notes.
func (h *Note) DeleteNote(w http.ResponseWriter, req *http.Request) {
	identity, ok := h.identity(w, req)
	if !ok {
		return
	}
	noteID, ok := h.noteID(w, req)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(req.Context(), identity.ID, noteID); err != nil {
		h.logger.Error("Note handler: delete note failed",
			"owner_id", identity.ID,
			"note_id", noteID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, errorResponse{Error: false, Message: "Note deleted successfully"})
}

// UpdatePinned sets the pin state of one of the user's notes.
func (h *Note) UpdatePinned(w http.ResponseWriter, req *http.Request) {
	identity, ok := h.identity(w, req)
	if !ok {
		return
	}
	noteID, ok := h.noteID(w, req)
	if !ok {
		return
	}

	var payload struct {
		IsPinned *bool `json:"isPinned"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	note, err := h.noteService.UpdatePin(req.Context(), identity.ID, noteID, payload.IsPinned)
	if err != nil {
		h.logger.Error("Note handler: update pin failed",
			"owner_id", identity.ID,
			"note_id", noteID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteResponse{Note: note, Message: "Note updated successfully"})
}

// SearchNotes matches the query against the user's notes.
func (h *Note) SearchNotes(w http.ResponseWriter, req *http.Request) {
	identity, ok := h.identity(w, req)
	if !ok {
		return
	}

	notes, err := h.noteService.SearchNotes(req.Context(), identity.ID, req.URL.Query().Get("query"))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notesResponse{Notes: notes, Message: "Notes fetched successfully"})
}

func (h *Note) identity(w http.ResponseWriter, req *http.Request) (model.Identity, bool) {
	identity, ok := h.contextManager.GetIdentityFromContext(req.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return model.Identity{}, false
	}
	return identity, true
}

func (h *Note) noteID(w http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	noteID, err := uuid.Parse(req.PathValue("noteId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "note not found")
		return uuid.Nil, false
	}
	return noteID, true
}
