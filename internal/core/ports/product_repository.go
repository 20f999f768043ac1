package ports

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// Search runs a full-text match on the product name. No match is an
	// empty result, not an error.
	Search(ctx context.Context, text string) ([]*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error

	// Reserve atomically decrements stock by qty only if stock >= qty.
	// Returns domain.ErrInsufficientStock when it does not, or
	// domain.ErrProductNotFound when the product is missing.
	Reserve(ctx context.Context, id string, qty int) error
	// Release returns qty units to stock.
	Release(ctx context.Context, id string, qty int) error
}
