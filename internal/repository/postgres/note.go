package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/inklet/inklet-server/internal/model"
)

var _ model.NoteStore = (*NoteRepository)(nil)

type NoteRepository struct {
	db *Connection
}

func NewNoteRepository(db *Connection) *NoteRepository {
	return &NoteRepository{
		db: db,
	}
}

func (r *NoteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `INSERT INTO notes (id, owner_id, title, content, tags, is_pinned, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, owner_id, title, content, tags, is_pinned, created_at, updated_at`

	var savedNote model.Note
	err := r.db.QueryRow(ctx, query,
		note.ID, note.OwnerID, note.Title, note.Content, note.Tags, note.IsPinned,
		note.CreatedAt, note.UpdatedAt,
	).Scan(
		&savedNote.ID, &savedNote.OwnerID, &savedNote.Title, &savedNote.Content,
		&savedNote.Tags, &savedNote.IsPinned, &savedNote.CreatedAt, &savedNote.UpdatedAt,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	return savedNote, nil
}

// GetOwned is the single access-control chokepoint: every per-note read
// filters by owner, so a foreign note is indistinguishable from an
// absent one.
func (r *NoteRepository) GetOwned(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (model.Note, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `SELECT id, owner_id, title, content, tags, is_pinned, created_at, updated_at
			  FROM notes WHERE id = $1 AND owner_id = $2`

	var note model.Note
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&note.ID, &note.OwnerID, &note.Title, &note.Content,
		&note.Tags, &note.IsPinned, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Note{}, model.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// Update applies the patch as one owner-scoped conditional UPDATE.
// Nil patch fields bind as NULL and fall through COALESCE, so there is
// no read-modify-write window between concurrent edits.
func (r *NoteRepository) Update(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, patch model.NotePatch) (model.Note, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `UPDATE notes
			  SET title = COALESCE($3::text, title),
			      content = COALESCE($4::text, content),
			      tags = COALESCE($5::text[], tags),
			      is_pinned = COALESCE($6::boolean, is_pinned),
			      updated_at = now()
			  WHERE id = $1 AND owner_id = $2
			  RETURNING id, owner_id, title, content, tags, is_pinned, created_at, updated_at`

	var note model.Note
	err := r.db.QueryRow(ctx, query,
		id, ownerID, patch.Title, patch.Content, patch.Tags, patch.IsPinned,
	).Scan(
		&note.ID, &note.OwnerID, &note.Title, &note.Content,
		&note.Tags, &note.IsPinned, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Note{}, model.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const query = `DELETE FROM notes WHERE id = $1 AND owner_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListByOwner returns the owner's notes with pinned notes strictly
// first; ties keep creation order.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `SELECT id, owner_id, title, content, tags, is_pinned, created_at, updated_at
			  FROM notes
			  WHERE owner_id = $1
			  ORDER BY is_pinned DESC, created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// Search matches query case-insensitively as a substring of title or
// content, scoped to the owner. LIKE metacharacters in the query are
// escaped so they match literally.
func (r *NoteRepository) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]model.Note, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	pattern := "%" + escapeLike(query) + "%"
	sql := `SELECT id, owner_id, title, content, tags, is_pinned, created_at, updated_at
			FROM notes
			WHERE owner_id = $1 AND (title ILIKE $2 OR content ILIKE $2)
			ORDER BY is_pinned DESC, created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, sql, ownerID, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

func scanNotes(rows pgx.Rows) ([]model.Note, error) {
	var notes []model.Note
	for rows.Next() {
		var note model.Note
		err := rows.Scan(
			&note.ID, &note.OwnerID, &note.Title, &note.Content,
			&note.Tags, &note.IsPinned, &note.CreatedAt, &note.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
