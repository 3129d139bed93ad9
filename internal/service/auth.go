package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/inklet/inklet-server/internal/logger"
	"github.com/inklet/inklet-server/internal/model"
)

// Auth implements account creation, credential login and profile reads.
// Secrets are stored as bcrypt hashes and never leave this service.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(userStore model.UserStore, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// SignUp registers a new account and returns it with a freshly issued
// access token. The email lookup gives the friendly duplicate error;
// the store's unique index is authoritative under concurrency.
func (a *Auth) SignUp(ctx context.Context, fullName, email, secret string) (model.User, string, error) {
	a.logger.Debug("Auth service: starting account creation", "email", email)

	if fullName == "" || email == "" || secret == "" {
		return model.User{}, "", model.ErrMissingField
	}

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.User{}, "", model.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash secret: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:         uuid.New(),
		FullName:   fullName,
		Email:      email,
		SecretHash: hash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	saved, err := a.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.User{}, "", err
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	accessToken, err := a.tokenManager.Issue(saved)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: account created", "email", email, "user_id", saved.ID)

	return saved, accessToken, nil
}

// Login verifies credentials and issues an access token.
func (a *Auth) Login(ctx context.Context, email, secret string) (model.User, string, error) {
	a.logger.Debug("Auth service: starting login", "email", email)

	if email == "" || secret == "" {
		return model.User{}, "", model.ErrMissingField
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.SecretHash, []byte(secret)); err != nil {
		a.logger.Info("Auth service: credential mismatch", "email", email)
		return model.User{}, "", model.ErrInvalidCredentials
	}

	accessToken, err := a.tokenManager.Issue(user)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed", "email", email, "user_id", user.ID)

	return user, accessToken, nil
}

// GetUser re-reads the account from the store. The token snapshot is
// not trusted for profile reads since it can be stale.
func (a *Auth) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
