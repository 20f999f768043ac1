package memory

import (
	"context"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/ports"
)

type OrderRepository struct {
	t *table[domain.Order]
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{t: newTable[domain.Order]()}
}

func (r *OrderRepository) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	row := cloneOrder(o)
	row.ID = newID()
	r.t.insert(row.ID, row)
	return cloneOrder(row), nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	o, ok := r.t.rows[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *OrderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*domain.Order, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	out := []*domain.Order{}
	r.t.each(func(o *domain.Order) {
		if filter.SellerID != "" && o.SellerID != filter.SellerID {
			return
		}
		if filter.Status != "" && o.Status != filter.Status {
			return
		}
		out = append(out, cloneOrder(o))
	})
	return out, nil
}

func (r *OrderRepository) Update(_ context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	o, ok := r.t.rows[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	patch.Apply(o)
	return cloneOrder(o), nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if !r.t.remove(id) {
		return domain.ErrOrderNotFound
	}
	return nil
}

func cloneOrder(o *domain.Order) *domain.Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]domain.LineItem(nil), o.Items...)
	return &clone
}
