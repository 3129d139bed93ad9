package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/inklet/inklet-server/internal/logger"
	"github.com/inklet/inklet-server/internal/model"
)

// TokenParser resolves identity snapshots from bearer tokens.
type TokenParser interface {
	Parse(token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity
// snapshot into the request context. Requests with an absent,
// malformed, invalid or expired token never reach the handler.
type Authenticate struct {
	tokenParser    TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenParser TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenParser: tokenParser, contextManager: contextManager, logger: logger}
}

// Handle wraps a handler with the bearer-token gate.
func (m *Authenticate) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		tokenString, err := bearerToken(req.Header.Get("Authorization"))
		if err != nil {
			m.logger.Info("authorization header invalid", "path", req.URL.Path, "error", err.Error())
			unauthorized(w, "authentication required")
			return
		}

		identity, err := m.tokenParser.Parse(tokenString)
		if err != nil {
			m.logger.Info("token validation failed", "path", req.URL.Path, "error", err.Error())
			unauthorized(w, "authentication failed")
			return
		}

		ctx := m.contextManager.SetIdentityToContext(req.Context(), identity)
		next(w, req.WithContext(ctx))
	}
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": true, "message": msg})
}
