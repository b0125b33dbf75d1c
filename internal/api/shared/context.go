package shared

import (
	"context"

	"github.com/meandevstar/atlas-backend/internal/domain"
)

// ContextKey is the type for context values owned by the API layer.
type ContextKey string

// IdentityContextKey is the context key under which the auth guard
// stores the authenticated user for the rest of the request.
const IdentityContextKey ContextKey = "identity"

// WithIdentity returns a context carrying the authenticated user.
func WithIdentity(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, IdentityContextKey, user)
}

// IdentityFromContext retrieves the authenticated user from the context.
// Returns nil when the request did not pass the auth guard.
func IdentityFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(IdentityContextKey).(*domain.User)
	return user
}
