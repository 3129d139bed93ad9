package context

import (
	"context"

	"github.com/inklet/inklet-server/internal/model"
)

// identityKey is unexported so no other package can collide with or
// forge the context value.
type identityKey struct{}

// Manager stores the verified identity in a typed request-context
// value. Handlers read it back instead of re-parsing the token.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a child context carrying the identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext retrieves the identity set by the
// authentication middleware, reporting whether one was present.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	return identity, ok
}
