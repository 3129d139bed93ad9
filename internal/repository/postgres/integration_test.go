//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/inklet/inklet-server/internal/model"
	repo "github.com/inklet/inklet-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "inklet_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/inklet_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createUser(t *testing.T, ur *repo.UserRepository, email string) model.User {
	t.Helper()
	user, err := ur.Create(context.Background(), model.User{
		ID:         uuid.New(),
		FullName:   "Test User",
		Email:      email,
		SecretHash: []byte("$2a$10$fakehash"),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	})
	require.NoError(t, err)
	return user
}

func createNote(t *testing.T, nr *repo.NoteRepository, ownerID uuid.UUID, title, content string, tags []string, pinned bool) model.Note {
	t.Helper()
	note, err := nr.Create(context.Background(), model.Note{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		IsPinned:  pinned,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	return note
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	nr := repo.NewNoteRepository(conn)

	t.Run("user_repository", func(t *testing.T) {
		user := createUser(t, ur, "user@example.com")

		byEmail, err := ur.GetByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		require.Equal(t, user.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, byID.Email)

		_, err = ur.GetByEmail(ctx, "absent@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		createUser(t, ur, "dup@example.com")

		_, err := ur.Create(ctx, model.User{
			ID:         uuid.New(),
			FullName:   "Other User",
			Email:      "dup@example.com",
			SecretHash: []byte("$2a$10$fakehash"),
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		})
		require.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("note_crud_and_tags_roundtrip", func(t *testing.T) {
		owner := createUser(t, ur, "noter@example.com")
		note := createNote(t, nr, owner.ID, "Groceries", "milk and eggs", []string{"a", "b"}, false)

		got, err := nr.GetOwned(ctx, note.ID, owner.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, got.Tags)
		require.False(t, got.IsPinned)

		require.NoError(t, nr.Delete(ctx, note.ID, owner.ID))
		_, err = nr.GetOwned(ctx, note.ID, owner.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		require.ErrorIs(t, nr.Delete(ctx, uuid.New(), owner.ID), model.ErrNotFound)
	})

	t.Run("ownership_isolation", func(t *testing.T) {
		alice := createUser(t, ur, "alice@example.com")
		bob := createUser(t, ur, "bob@example.com")
		note := createNote(t, nr, alice.ID, "secret", "alice only", nil, false)

		_, err := nr.GetOwned(ctx, note.ID, bob.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = nr.Update(ctx, note.ID, bob.ID, model.NotePatch{Title: strPtr("stolen")})
		require.ErrorIs(t, err, model.ErrNotFound)

		require.ErrorIs(t, nr.Delete(ctx, note.ID, bob.ID), model.ErrNotFound)

		// Alice still sees her note unchanged.
		got, err := nr.GetOwned(ctx, note.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "secret", got.Title)
	})

	t.Run("patch_update_and_unpin", func(t *testing.T) {
		owner := createUser(t, ur, "patcher@example.com")
		note := createNote(t, nr, owner.ID, "draft", "v1", []string{"x"}, true)

		updated, err := nr.Update(ctx, note.ID, owner.ID, model.NotePatch{Content: strPtr("v2")})
		require.NoError(t, err)
		require.Equal(t, "draft", updated.Title)
		require.Equal(t, "v2", updated.Content)
		require.True(t, updated.IsPinned)

		unpinned, err := nr.Update(ctx, note.ID, owner.ID, model.NotePatch{IsPinned: boolPtr(false)})
		require.NoError(t, err)
		require.False(t, unpinned.IsPinned)
		require.Equal(t, "v2", unpinned.Content)
	})

	t.Run("list_pinned_first", func(t *testing.T) {
		owner := createUser(t, ur, "lister@example.com")
		first := createNote(t, nr, owner.ID, "one", "c", nil, false)
		second := createNote(t, nr, owner.ID, "two", "c", nil, true)
		third := createNote(t, nr, owner.ID, "three", "c", nil, false)

		notes, err := nr.ListByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, notes, 3)
		require.Equal(t, second.ID, notes[0].ID)
		require.Equal(t, first.ID, notes[1].ID)
		require.Equal(t, third.ID, notes[2].ID)
	})

	t.Run("search", func(t *testing.T) {
		owner := createUser(t, ur, "searcher@example.com")
		other := createUser(t, ur, "other@example.com")
		byTitle := createNote(t, nr, owner.ID, "Foobar", "unrelated", nil, false)
		byContent := createNote(t, nr, owner.ID, "plain", "has foo inside", nil, false)
		createNote(t, nr, owner.ID, "nothing", "here", nil, false)
		createNote(t, nr, other.ID, "foo elsewhere", "foo", nil, false)

		notes, err := nr.Search(ctx, owner.ID, "foo")
		require.NoError(t, err)
		require.Len(t, notes, 2)
		ids := []uuid.UUID{notes[0].ID, notes[1].ID}
		require.Contains(t, ids, byTitle.ID)
		require.Contains(t, ids, byContent.ID)

		empty, err := nr.Search(ctx, owner.ID, "zzz-no-match")
		require.NoError(t, err)
		require.Empty(t, empty)

		// LIKE metacharacters match literally.
		createNote(t, nr, owner.ID, "percent 50% off", "deal", nil, false)
		literal, err := nr.Search(ctx, owner.ID, "50%")
		require.NoError(t, err)
		require.Len(t, literal, 1)
	})
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
