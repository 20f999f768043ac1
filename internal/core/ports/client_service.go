package ports

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

// CreateClientInput carries the data needed to create a client.
type CreateClientInput struct {
	Name    string `validate:"required"`
	Surname string `validate:"required"`
	Company string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string
}

// UpdateClientInput is a partial update; nil fields are left untouched.
type UpdateClientInput struct {
	Name    *string `validate:"omitempty,min=1"`
	Surname *string `validate:"omitempty,min=1"`
	Company *string `validate:"omitempty,min=1"`
	Email   *string `validate:"omitempty,email"`
	Phone   *string
}

// ClientService defines use-case operations for clients. Every operation
// needs an authenticated identity; single-client operations also require
// the identity to own the client.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput, owner *domain.Identity) (*domain.Client, error)
	Get(ctx context.Context, id string, owner *domain.Identity) (*domain.Client, error)
	List(ctx context.Context, identity *domain.Identity) ([]*domain.Client, error)
	ListBySeller(ctx context.Context, owner *domain.Identity) ([]*domain.Client, error)
	Update(ctx context.Context, id string, input UpdateClientInput, owner *domain.Identity) (*domain.Client, error)
	Delete(ctx context.Context, id string, owner *domain.Identity) error
	// Lookup resolves a client reference without an ownership check.
	Lookup(ctx context.Context, id string) (*domain.Client, error)
}
