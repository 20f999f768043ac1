package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/ports"
)

// ReportService computes the best-clients and best-sellers rankings from
// COMPLETADO orders.
type ReportService struct {
	orders  ports.OrderRepository
	clients ports.ClientRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewReportService(orders ports.OrderRepository, clients ports.ClientRepository, users ports.UserRepository, log zerolog.Logger) *ReportService {
	return &ReportService{orders: orders, clients: clients, users: users, log: log}
}

func (s *ReportService) TopClients(ctx context.Context, limit int) ([]domain.ClientRanking, error) {
	totals, err := s.totals(ctx, limit, func(o *domain.Order) string { return o.ClientID })
	if err != nil {
		return nil, err
	}

	found, err := s.clients.FindByIDs(ctx, keys(totals))
	if err != nil {
		return nil, fmt.Errorf("top clients: %w", err)
	}
	byID := make(map[string]*domain.Client, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	out := make([]domain.ClientRanking, 0, len(totals))
	for _, t := range totals {
		c, ok := byID[t.Key]
		if !ok {
			s.log.Warn().Str("client_id", t.Key).Msg("ranked client no longer exists")
		}
		out = append(out, domain.ClientRanking{Client: c, Total: t.Total})
	}
	return out, nil
}

func (s *ReportService) TopSellers(ctx context.Context, limit int) ([]domain.SellerRanking, error) {
	totals, err := s.totals(ctx, limit, func(o *domain.Order) string { return o.SellerID })
	if err != nil {
		return nil, err
	}

	found, err := s.users.FindByIDs(ctx, keys(totals))
	if err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}
	byID := make(map[string]*domain.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	out := make([]domain.SellerRanking, 0, len(totals))
	for _, t := range totals {
		u, ok := byID[t.Key]
		if !ok {
			s.log.Warn().Str("seller_id", t.Key).Msg("ranked seller no longer exists")
		}
		out = append(out, domain.SellerRanking{Seller: u, Total: t.Total})
	}
	return out, nil
}

func (s *ReportService) totals(ctx context.Context, limit int, key func(*domain.Order) string) ([]domain.Total, error) {
	if limit < 0 {
		return nil, domain.Invalid("limit must not be negative")
	}
	if limit == 0 {
		limit = domain.DefaultRankingLimit
	}
	orders, err := s.orders.List(ctx, ports.OrderFilter{Status: domain.StatusCompleted})
	if err != nil {
		return nil, fmt.Errorf("load completed orders: %w", err)
	}
	return rankTotals(orders, key, limit), nil
}

// rankTotals sums the totals of completed orders per key and returns the
// limit highest, descending. Ties keep the order in which keys first appear.
func rankTotals(orders []*domain.Order, key func(*domain.Order) string, limit int) []domain.Total {
	idx := make(map[string]int)
	var totals []domain.Total
	for _, o := range orders {
		if o.Status != domain.StatusCompleted {
			continue
		}
		k := key(o)
		i, ok := idx[k]
		if !ok {
			i = len(totals)
			idx[k] = i
			totals = append(totals, domain.Total{Key: k})
		}
		totals[i].Total += o.Total
	}

	sort.SliceStable(totals, func(a, b int) bool { return totals[a].Total > totals[b].Total })
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

func keys(totals []domain.Total) []string {
	ids := make([]string, len(totals))
	for i, t := range totals {
		ids[i] = t.Key
	}
	return ids
}
