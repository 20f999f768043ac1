package ports

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

type CreateProductInput struct {
	Name  string  `validate:"required"`
	Stock int     `validate:"gte=0"`
	Price float64 `validate:"gte=0"`
}

// UpdateProductInput is a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name  *string  `validate:"omitempty,min=1"`
	Stock *int     `validate:"omitempty,gte=0"`
	Price *float64 `validate:"omitempty,gte=0"`
}

// ProductService defines catalog use cases. Products carry no owner.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, text string) ([]*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
