package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/inklet/inklet-server/internal/model"
)

// NoteStore is a mock implementation of model.NoteStore.
type NoteStore struct {
	mock.Mock
}

func (m *NoteStore) Create(ctx context.Context, note model.Note) (model.Note, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *NoteStore) GetOwned(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (model.Note, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *NoteStore) Update(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, patch model.NotePatch) (model.Note, error) {
	args := m.Called(ctx, id, ownerID, patch)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *NoteStore) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *NoteStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *NoteStore) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]model.Note, error) {
	args := m.Called(ctx, ownerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}
