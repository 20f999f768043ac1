package memory

import (
	"context"
	"strings"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

type UserRepository struct {
	t *table[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{t: newTable[domain.User]()}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	for _, u := range r.t.rows {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrUserExists
		}
	}

	row := *user
	row.ID = newID()
	r.t.insert(row.ID, &row)

	out := row
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	for _, u := range r.t.rows {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	u, ok := r.t.rows[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.t.rows[id]; ok {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}
