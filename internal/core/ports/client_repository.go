package ports

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	// Create returns domain.ErrClientExists when the e-mail is already taken.
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Client, error)
	// List returns clients in creation order. When sellerID is non-empty only
	// that seller's clients are returned.
	List(ctx context.Context, sellerID string) ([]*domain.Client, error)
	Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
