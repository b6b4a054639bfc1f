package adapthttp

import (
	"context"

	"motors/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// withIdentity returns a child context carrying the verified identity.
// The value is immutable and scoped to the request's lifetime.
func withIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFrom extracts the verified identity from the request context.
// ok is false for anonymous requests.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(domain.Identity)
	return id, ok
}
