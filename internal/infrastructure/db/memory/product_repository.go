package memory

import (
	"context"
	"strings"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

type ProductRepository struct {
	t *table[domain.Product]
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{t: newTable[domain.Product]()}
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	row := *p
	row.ID = newID()
	r.t.insert(row.ID, &row)

	out := row
	return &out, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	p, ok := r.t.rows[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	out := []*domain.Product{}
	r.t.each(func(p *domain.Product) {
		cp := *p
		out = append(out, &cp)
	})
	return out, nil
}

// Search matches whole words of the product name, ignoring case, the way a
// text index does for single-language content.
func (r *ProductRepository) Search(_ context.Context, text string) ([]*domain.Product, error) {
	terms := strings.Fields(strings.ToLower(text))

	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	out := []*domain.Product{}
	r.t.each(func(p *domain.Product) {
		if matchesAny(p.Name, terms) {
			cp := *p
			out = append(out, &cp)
		}
	})
	return out, nil
}

func matchesAny(name string, terms []string) bool {
	for _, w := range strings.Fields(strings.ToLower(name)) {
		for _, t := range terms {
			if w == t {
				return true
			}
		}
	}
	return false
}

func (r *ProductRepository) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	p, ok := r.t.rows[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	patch.Apply(p)
	out := *p
	return &out, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if !r.t.remove(id) {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Reserve(_ context.Context, id string, qty int) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	p, ok := r.t.rows[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *ProductRepository) Release(_ context.Context, id string, qty int) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	p, ok := r.t.rows[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += qty
	return nil
}
