package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/inklet/inklet-server/internal/logger"
	"github.com/inklet/inklet-server/internal/model"
)

// AuthService defines account creation, login and profile operations.
type AuthService interface {
	SignUp(ctx context.Context, fullName, email, secret string) (model.User, string, error)
	Login(ctx context.Context, email, secret string) (model.User, string, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
}

// Auth handles HTTP endpoints for accounts and sessions.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type userResponse struct {
	Error       bool       `json:"error"`
	User        model.User `json:"user"`
	AccessToken string     `json:"accessToken,omitempty"`
	Message     string     `json:"message"`
}

// CreateAccount registers a new user and returns it with a token.
func (h *Auth) CreateAccount(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		FullName string `json:"fullname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, accessToken, err := h.authService.SignUp(req.Context(), payload.FullName, payload.Email, payload.Password)
	if err != nil {
		h.logger.Error("Auth handler: account creation failed",
			"email", payload.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		User:        user,
		AccessToken: accessToken,
		Message:     "User created successfully",
	})
}

// Login verifies credentials and returns a token.
func (h *Auth) Login(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, accessToken, err := h.authService.Login(req.Context(), payload.Email, payload.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", payload.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Error       bool   `json:"error"`
		Email       string `json:"email"`
		AccessToken string `json:"accessToken"`
		Message     string `json:"message"`
	}{
		Email:       user.Email,
		AccessToken: accessToken,
		Message:     "User logged in successfully",
	})
}

// GetUser returns the authenticated user's public profile, freshly
// read from the store rather than echoed from the token snapshot.
func (h *Auth) GetUser(w http.ResponseWriter, req *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(req.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.authService.GetUser(req.Context(), identity.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		User:    user,
		Message: "User fetched successfully",
	})
}
