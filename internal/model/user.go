package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered account with authentication material.
type User struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	SecretHash []byte    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

// Identity is the snapshot of a user embedded in access tokens.
// It is a capability claim: it reflects the account as of token
// issuance and can be stale for up to the token lifetime.
type Identity struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Snapshot returns the token-embeddable identity view of the user.
func (u User) Snapshot() Identity {
	return Identity{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
