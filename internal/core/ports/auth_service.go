package ports

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

// RegisterInput carries the data needed to register a seller.
type RegisterInput struct {
	Name     string `validate:"required"`
	Surname  string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Verify decodes a signed token into the identity it was issued for.
	Verify(token string) (*domain.Identity, error)
	CurrentUser(ctx context.Context, identity *domain.Identity) (*domain.User, error)
}
