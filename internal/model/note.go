package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NoteStore defines persistence operations for notes. Every per-note
// operation is owner-scoped: the store must never expose a note to a
// requester other than its owner.
type NoteStore interface {
	Create(ctx context.Context, note Note) (Note, error)
	GetOwned(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (Note, error)
	Update(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, patch NotePatch) (Note, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Note, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string) ([]Note, error)
}

// Note represents an owned text record.
type Note struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// CreateNoteParams contains parameters to create a note.
type CreateNoteParams struct {
	OwnerID uuid.UUID
	Title   string
	Content string
	Tags    []string
}

// NotePatch is a partial note update. Nil fields are left untouched,
// so presence and absence are distinguishable: IsPinned pointing at
// false un-pins the note, a nil IsPinned changes nothing.
type NotePatch struct {
	Title    *string
	Content  *string
	Tags     *[]string
	IsPinned *bool
}

// Empty reports whether the patch carries no fields at all.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.IsPinned == nil
}
