package memory

import (
	"context"
	"strings"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

type ClientRepository struct {
	t *table[domain.Client]
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{t: newTable[domain.Client]()}
}

func (r *ClientRepository) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if r.emailTaken(c.Email, "") {
		return nil, domain.ErrClientExists
	}

	row := *c
	row.ID = newID()
	r.t.insert(row.ID, &row)

	out := row
	return &out, nil
}

func (r *ClientRepository) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	c, ok := r.t.rows[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	out := *c
	return &out, nil
}

func (r *ClientRepository) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	for _, c := range r.t.rows {
		if strings.EqualFold(c.Email, email) {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *ClientRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.Client, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	out := make([]*domain.Client, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.t.rows[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ClientRepository) List(_ context.Context, sellerID string) ([]*domain.Client, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	out := []*domain.Client{}
	r.t.each(func(c *domain.Client) {
		if sellerID == "" || c.SellerID == sellerID {
			cp := *c
			out = append(out, &cp)
		}
	})
	return out, nil
}

func (r *ClientRepository) Update(_ context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	c, ok := r.t.rows[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, domain.ErrClientExists
	}

	patch.Apply(c)
	out := *c
	return &out, nil
}

func (r *ClientRepository) Delete(_ context.Context, id string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if !r.t.remove(id) {
		return domain.ErrClientNotFound
	}
	return nil
}

// emailTaken must be called with the lock held.
func (r *ClientRepository) emailTaken(email, exceptID string) bool {
	for id, c := range r.t.rows {
		if id != exceptID && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}
