package ports

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

// ReportService ranks clients and sellers by the total of their completed
// orders. Rankings are not scoped to the caller.
type ReportService interface {
	TopClients(ctx context.Context, limit int) ([]domain.ClientRanking, error)
	TopSellers(ctx context.Context, limit int) ([]domain.SellerRanking, error)
}
