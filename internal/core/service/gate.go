package service

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	tokenErrKey
)

// WithIdentity returns a context carrying the authenticated caller.
func WithIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// WithTokenError records why a presented token was rejected, so operations
// that need an identity can report it instead of a bare "unauthenticated".
func WithTokenError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, tokenErrKey, err)
}

// IdentityFrom returns the caller identity, or nil for anonymous requests.
func IdentityFrom(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(identityKey).(*domain.Identity)
	return id
}

// RequireIdentity returns the caller identity or the reason there is none.
func RequireIdentity(ctx context.Context) (*domain.Identity, error) {
	if id := IdentityFrom(ctx); id != nil {
		return id, nil
	}
	if err, ok := ctx.Value(tokenErrKey).(error); ok && err != nil {
		return nil, err
	}
	return nil, domain.ErrUnauthenticated
}

// RequireOwnership fails with domain.ErrForbidden unless identity is ownerID.
func RequireOwnership(ownerID string, identity *domain.Identity) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if ownerID != identity.ID {
		return domain.ErrForbidden
	}
	return nil
}

func requireAuthenticated(identity *domain.Identity) error {
	if identity == nil || identity.ID == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}
