package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

func completed(seller, client string, total float64) *domain.Order {
	return &domain.Order{SellerID: seller, ClientID: client, Total: total, Status: domain.StatusCompleted}
}

func byClient(o *domain.Order) string { return o.ClientID }

func TestRankTotals_SortsBeforeTruncating(t *testing.T) {
	orders := []*domain.Order{
		completed("s", "a", 10),
		completed("s", "b", 5),
		completed("s", "c", 50),
		completed("s", "a", 30),
	}

	got := rankTotals(orders, byClient, 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Key != "c" || got[0].Total != 50 {
		t.Errorf("expected c=50 first, got %+v", got[0])
	}
	if got[1].Key != "a" || got[1].Total != 40 {
		t.Errorf("expected a=40 second, got %+v", got[1])
	}
}

func TestRankTotals_TiesKeepFirstSeenOrder(t *testing.T) {
	orders := []*domain.Order{
		completed("s", "x", 20),
		completed("s", "y", 20),
		completed("s", "z", 20),
	}

	got := rankTotals(orders, byClient, 10)

	if len(got) != 3 || got[0].Key != "x" || got[1].Key != "y" || got[2].Key != "z" {
		t.Errorf("ties should keep first-seen order, got %+v", got)
	}
}

func TestRankTotals_IgnoresOpenOrders(t *testing.T) {
	orders := []*domain.Order{
		completed("s", "a", 10),
		{ClientID: "a", Total: 1000, Status: domain.StatusPending},
		{ClientID: "b", Total: 1000, Status: domain.StatusCancelled},
	}

	got := rankTotals(orders, byClient, 10)

	if len(got) != 1 || got[0].Key != "a" || got[0].Total != 10 {
		t.Errorf("only completed orders count, got %+v", got)
	}
}

func TestReportService_TopClientsAndSellers(t *testing.T) {
	st := newStores()
	svc := NewReportService(st.orders, st.clients, st.users, zerolog.Nop())
	s1 := st.seller(t, "s1@example.com")
	s2 := st.seller(t, "s2@example.com")
	c1 := st.client(t, s1, "c1@example.com")
	c2 := st.client(t, s2, "c2@example.com")
	ctx := context.Background()

	for _, o := range []*domain.Order{
		completed(s1.ID, c1.ID, 100),
		completed(s2.ID, c2.ID, 300),
		completed(s1.ID, c1.ID, 50),
		{SellerID: s1.ID, ClientID: c1.ID, Total: 999, Status: domain.StatusPending},
	} {
		if _, err := st.orders.Create(ctx, o); err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	clients, err := svc.TopClients(ctx, 0)
	if err != nil {
		t.Fatalf("top clients: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 ranked clients, got %d", len(clients))
	}
	if clients[0].Client == nil || clients[0].Client.ID != c2.ID || clients[0].Total != 300 {
		t.Errorf("unexpected first client: %+v", clients[0])
	}
	if clients[1].Client == nil || clients[1].Client.ID != c1.ID || clients[1].Total != 150 {
		t.Errorf("unexpected second client: %+v", clients[1])
	}

	sellers, err := svc.TopSellers(ctx, 1)
	if err != nil {
		t.Fatalf("top sellers: %v", err)
	}
	if len(sellers) != 1 || sellers[0].Seller == nil || sellers[0].Seller.ID != s2.ID || sellers[0].Total != 300 {
		t.Errorf("unexpected top seller: %+v", sellers)
	}
}

func TestReportService_DeletedClientHasNoEntity(t *testing.T) {
	st := newStores()
	svc := NewReportService(st.orders, st.clients, st.users, zerolog.Nop())
	s1 := st.seller(t, "s1@example.com")
	c1 := st.client(t, s1, "c1@example.com")
	ctx := context.Background()

	if _, err := st.orders.Create(ctx, completed(s1.ID, c1.ID, 10)); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	if err := st.clients.Delete(ctx, c1.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}

	got, err := svc.TopClients(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Client != nil || got[0].Total != 10 {
		t.Errorf("expected one entry without client, got %+v", got)
	}
}

func TestReportService_NegativeLimit(t *testing.T) {
	st := newStores()
	svc := NewReportService(st.orders, st.clients, st.users, zerolog.Nop())

	if _, err := svc.TopClients(context.Background(), -1); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
