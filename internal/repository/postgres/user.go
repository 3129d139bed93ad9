package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inklet/inklet-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// uniqueViolation is the postgres error code for a unique index hit.
const uniqueViolation = "23505"

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var user model.User
	query := `SELECT id, full_name, email, secret_hash, created_at, updated_at
			  FROM users WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.FullName, &user.Email, &user.SecretHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var user model.User
	query := `SELECT id, full_name, email, secret_hash, created_at, updated_at
			  FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.FullName, &user.Email, &user.SecretHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `INSERT INTO users (id, full_name, email, secret_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, full_name, email, secret_hash, created_at, updated_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.FullName, user.Email, user.SecretHash,
		user.CreatedAt, user.UpdatedAt,
	).Scan(
		&savedUser.ID, &savedUser.FullName, &savedUser.Email, &savedUser.SecretHash,
		&savedUser.CreatedAt, &savedUser.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}
