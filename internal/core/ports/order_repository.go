package ports

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

// OrderFilter narrows List. Zero values mean "no filter".
type OrderFilter struct {
	SellerID string
	Status   domain.OrderStatus
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns matching orders in creation order.
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	Update(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
