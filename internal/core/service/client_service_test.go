package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func clientInput(email string) ports.CreateClientInput {
	return ports.CreateClientInput{Name: "Luis", Surname: "Pérez", Company: "ACME", Email: email, Phone: "555"}
}

func TestClientService_Create(t *testing.T) {
	st := newStores()
	svc := NewClientService(st.clients, zerolog.Nop())
	owner := st.seller(t, "s1@example.com")

	c, err := svc.Create(context.Background(), clientInput("Luis@Example.com"), owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.SellerID != owner.ID {
		t.Errorf("client should belong to the caller, got seller %q", c.SellerID)
	}
	if c.Email != "luis@example.com" {
		t.Errorf("email should be normalised, got %q", c.Email)
	}
}

func TestClientService_Create_EmailIsGloballyUnique(t *testing.T) {
	st := newStores()
	svc := NewClientService(st.clients, zerolog.Nop())
	s1 := st.seller(t, "s1@example.com")
	s2 := st.seller(t, "s2@example.com")

	if _, err := svc.Create(context.Background(), clientInput("luis@example.com"), s1); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), clientInput("luis@example.com"), s2)
	if !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists across sellers, got %v", err)
	}
}

func TestClientService_Create_RequiresIdentity(t *testing.T) {
	st := newStores()
	svc := NewClientService(st.clients, zerolog.Nop())

	_, err := svc.Create(context.Background(), clientInput("luis@example.com"), nil)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestClientService_NotFoundBeforeForbidden(t *testing.T) {
	st := newStores()
	svc := NewClientService(st.clients, zerolog.Nop())
	owner := st.seller(t, "s1@example.com")
	other := st.seller(t, "s2@example.com")
	c := st.client(t, owner, "c1@example.com")
	ctx := context.Background()

	if _, err := svc.Get(ctx, "missing", other); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("get missing: expected ErrClientNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, c.ID, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("get foreign: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, c.ID, ports.UpdateClientInput{Name: strPtr("X")}, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("update foreign: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, "missing", other); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("delete missing: expected ErrClientNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, c.ID, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("delete foreign: expected ErrForbidden, got %v", err)
	}
}

func TestClientService_Update_PartialMerge(t *testing.T) {
	st := newStores()
	svc := NewClientService(st.clients, zerolog.Nop())
	owner := st.seller(t, "s1@example.com")
	c := st.client(t, owner, "c1@example.com")

	updated, err := svc.Update(context.Background(), c.ID, ports.UpdateClientInput{Company: strPtr("Globex")}, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Company != "Globex" {
		t.Errorf("company not updated: %q", updated.Company)
	}
	if updated.Name != c.Name || updated.Email != c.Email || updated.SellerID != owner.ID {
		t.Errorf("unspecified fields changed: %+v", updated)
	}
}

func TestClientService_Update_EmailTaken(t *testing.T) {
	st := newStores()
	svc := NewClientService(st.clients, zerolog.Nop())
	owner := st.seller(t, "s1@example.com")
	c1 := st.client(t, owner, "c1@example.com")
	st.client(t, owner, "c2@example.com")
	ctx := context.Background()

	_, err := svc.Update(ctx, c1.ID, ports.UpdateClientInput{Email: strPtr("C2@example.com")}, owner)
	if !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}

	if _, err := svc.Update(ctx, c1.ID, ports.UpdateClientInput{Email: strPtr("c1@example.com")}, owner); err != nil {
		t.Fatalf("keeping own email should succeed: %v", err)
	}
}

func TestClientService_Lists(t *testing.T) {
	st := newStores()
	svc := NewClientService(st.clients, zerolog.Nop())
	s1 := st.seller(t, "s1@example.com")
	s2 := st.seller(t, "s2@example.com")
	st.client(t, s1, "a@example.com")
	st.client(t, s2, "b@example.com")
	st.client(t, s1, "c@example.com")
	ctx := context.Background()

	all, err := svc.List(ctx, s2)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 clients, got %d (%v)", len(all), err)
	}

	own, err := svc.ListBySeller(ctx, s1)
	if err != nil || len(own) != 2 {
		t.Fatalf("expected 2 own clients, got %d (%v)", len(own), err)
	}
	if own[0].Email != "a@example.com" || own[1].Email != "c@example.com" {
		t.Errorf("expected creation order, got %s, %s", own[0].Email, own[1].Email)
	}

	if _, err := svc.List(ctx, nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
