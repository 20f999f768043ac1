package ports

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

// OrderLineInput asks for Quantity units of one product.
type OrderLineInput struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"gt=0"`
}

// CreateOrderInput carries the data needed to place an order.
type CreateOrderInput struct {
	ClientID string           `validate:"required"`
	Items    []OrderLineInput `validate:"required,min=1,dive"`
	// Total is trusted as sent by the caller.
	Total float64 `validate:"gte=0"`
	// IdempotencyKey is optional; when set, retries with the same key
	// return the order created by the first call.
	IdempotencyKey string
}

// UpdateOrderInput is a partial update. A nil Items leaves the line items
// untouched; a non-nil one replaces them and must not be empty.
type UpdateOrderInput struct {
	ClientID *string
	Items    []OrderLineInput `validate:"omitempty,dive"`
	Total    *float64         `validate:"omitempty,gte=0"`
	Status   *domain.OrderStatus
}

type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput, owner *domain.Identity) (*domain.Order, error)
	Get(ctx context.Context, id string, owner *domain.Identity) (*domain.Order, error)
	List(ctx context.Context, identity *domain.Identity) ([]*domain.Order, error)
	ListBySeller(ctx context.Context, owner *domain.Identity) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, owner *domain.Identity) ([]*domain.Order, error)
	Update(ctx context.Context, id string, input UpdateOrderInput, owner *domain.Identity) (*domain.Order, error)
	Delete(ctx context.Context, id string, owner *domain.Identity) error
}

// IdempotencyStore remembers which order a client-supplied key produced.
type IdempotencyStore interface {
	// Claim reserves key. When the key was already claimed it returns
	// claimed=false and, if the first request finished, the order ID it produced.
	Claim(ctx context.Context, key string) (orderID string, claimed bool, err error)
	// Complete binds a claimed key to the order it produced.
	Complete(ctx context.Context, key, orderID string) error
	// Release drops a claim so the request can be retried.
	Release(ctx context.Context, key string) error
}
