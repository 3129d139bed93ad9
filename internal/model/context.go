package model

import "context"

// ContextManager attaches the verified identity to a request context
// and reads it back in handlers.
type ContextManager interface {
	SetIdentityToContext(ctx context.Context, identity Identity) context.Context
	GetIdentityFromContext(ctx context.Context) (Identity, bool)
}
