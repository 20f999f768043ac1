package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

func TestRequireIdentity(t *testing.T) {
	ctx := context.Background()

	if _, err := RequireIdentity(ctx); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous: expected ErrUnauthenticated, got %v", err)
	}

	expired := WithTokenError(ctx, domain.ErrTokenExpired)
	if _, err := RequireIdentity(expired); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("rejected token: expected ErrTokenExpired, got %v", err)
	}

	authed := WithIdentity(ctx, &domain.Identity{ID: "s1"})
	id, err := RequireIdentity(authed)
	if err != nil || id.ID != "s1" {
		t.Fatalf("expected identity s1, got %+v, %v", id, err)
	}
}

func TestRequireOwnership(t *testing.T) {
	owner := &domain.Identity{ID: "s1"}

	if err := RequireOwnership("s1", owner); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}
	if err := RequireOwnership("s2", owner); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := RequireOwnership("s1", nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
