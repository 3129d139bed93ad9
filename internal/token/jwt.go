package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inklet/inklet-server/internal/model"
)

// Claims represents JWT claims carrying an identity snapshot.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// JWT implements model.TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey}
}

// accessTTL is the access token lifetime: 36000 minutes (600 hours).
// The embedded snapshot may be stale for up to this long relative to
// the user store.
const accessTTL = 36000 * time.Minute

// Issue creates a signed access token embedding a snapshot of the user.
func (j *JWT) Issue(user model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
		},
		UserID:    user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Parse validates signature and expiry and extracts the identity
// snapshot. Callers must treat the snapshot as a capability claim,
// not a live lookup.
func (j *JWT) Parse(tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return model.Identity{}, model.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return model.Identity{}, model.ErrTokenExpired
		default:
			return model.Identity{}, model.ErrTokenInvalid
		}
	}
	if !token.Valid {
		return model.Identity{}, model.ErrTokenInvalid
	}

	return model.Identity{
		ID:        claims.UserID,
		FullName:  claims.FullName,
		Email:     claims.Email,
		CreatedAt: claims.CreatedAt,
	}, nil
}
