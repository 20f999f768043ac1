package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/infrastructure/db/memory"
)

type stores struct {
	users    *memory.UserRepository
	clients  *memory.ClientRepository
	products *memory.ProductRepository
	orders   *memory.OrderRepository
}

func newStores() *stores {
	return &stores{
		users:    memory.NewUserRepository(),
		clients:  memory.NewClientRepository(),
		products: memory.NewProductRepository(),
		orders:   memory.NewOrderRepository(),
	}
}

func (s *stores) seller(t *testing.T, email string) *domain.Identity {
	t.Helper()
	u, err := s.users.Create(context.Background(), &domain.User{
		Name: "Seller", Surname: "Test", Email: email, PasswordHash: "x", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("create seller: %v", err)
	}
	return domain.IdentityOf(u)
}

func (s *stores) client(t *testing.T, owner *domain.Identity, email string) *domain.Client {
	t.Helper()
	c, err := s.clients.Create(context.Background(), &domain.Client{
		Name: "Cliente", Surname: "Uno", Company: "ACME", Email: email, SellerID: owner.ID,
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

func (s *stores) product(t *testing.T, name string, stock int, price float64) *domain.Product {
	t.Helper()
	p, err := s.products.Create(context.Background(), &domain.Product{Name: name, Stock: stock, Price: price})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func (s *stores) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := s.products.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	return p.Stock
}

func (s *stores) orderService() *OrderService {
	return NewOrderService(s.orders, s.clients, s.products, memory.NewIdempotencyStore(), zerolog.Nop())
}
