package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inklet/inklet-server/internal/logger"
	"github.com/inklet/inklet-server/internal/model"
)

// Note implements owner-scoped note operations. Ownership checks are
// never done here against cached state: every call passes the
// requester's ID down to the store, which filters by owner.
type Note struct {
	noteStore model.NoteStore
	logger    *logger.Logger
}

func NewNote(noteStore model.NoteStore, logger *logger.Logger) *Note {
	return &Note{
		noteStore: noteStore,
		logger:    logger,
	}
}

// CreateNote validates required fields and persists an unpinned note.
func (s *Note) CreateNote(ctx context.Context, params model.CreateNoteParams) (model.Note, error) {
	if params.Title == "" || params.Content == "" {
		return model.Note{}, model.ErrMissingField
	}

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	note := model.Note{
		ID:        uuid.New(),
		OwnerID:   params.OwnerID,
		Title:     params.Title,
		Content:   params.Content,
		Tags:      tags,
		IsPinned:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.noteStore.Create(ctx, note)
	if err != nil {
		s.logger.Error("Note service: failed to create note",
			"owner_id", params.OwnerID,
			"error", err.Error())
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Info("Note service: note created", "owner_id", params.OwnerID, "note_id", saved.ID)

	return saved, nil
}

// UpdateNote applies a partial update to an owned note. A patch with
// no fields at all is rejected before touching the store.
func (s *Note) UpdateNote(ctx context.Context, ownerID, noteID uuid.UUID, patch model.NotePatch) (model.Note, error) {
	if patch.Empty() {
		return model.Note{}, model.ErrEmptyPatch
	}

	note, err := s.noteStore.Update(ctx, noteID, ownerID, patch)
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// UpdatePin sets the pin state of an owned note. A nil isPinned means
// the client sent no value, which is an empty patch; an explicit false
// un-pins.
func (s *Note) UpdatePin(ctx context.Context, ownerID, noteID uuid.UUID, isPinned *bool) (model.Note, error) {
	if isPinned == nil {
		return model.Note{}, model.ErrEmptyPatch
	}

	note, err := s.noteStore.Update(ctx, noteID, ownerID, model.NotePatch{IsPinned: isPinned})
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// DeleteNote removes an owned note.
func (s *Note) DeleteNote(ctx context.Context, ownerID, noteID uuid.UUID) error {
	if err := s.noteStore.Delete(ctx, noteID, ownerID); err != nil {
		return err
	}

	s.logger.Info("Note service: note deleted", "owner_id", ownerID, "note_id", noteID)

	return nil
}

// ListNotes returns all of the owner's notes, pinned first.
func (s *Note) ListNotes(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	notes, err := s.noteStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if notes == nil {
		notes = []model.Note{}
	}

	return notes, nil
}

// SearchNotes matches the query against the owner's notes. No matches
// is an empty result, not an error.
func (s *Note) SearchNotes(ctx context.Context, ownerID uuid.UUID, query string) ([]model.Note, error) {
	if query == "" {
		return nil, model.ErrMissingQuery
	}

	notes, err := s.noteStore.Search(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	if notes == nil {
		notes = []model.Note{}
	}

	return notes, nil
}
