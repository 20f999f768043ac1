package domain

import (
	"errors"
	"testing"
)

func TestOrderStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCompleted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestOrderStatus_ValidAndTerminal(t *testing.T) {
	if !StatusPending.Valid() || StatusPending.Terminal() {
		t.Error("PENDIENTE must be valid and not terminal")
	}
	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Error("COMPLETADO and CANCELADO must be terminal")
	}
	if OrderStatus("ENVIADO").Valid() {
		t.Error("unknown status reported valid")
	}
}

func TestQuantities_SumsInFirstSeenOrder(t *testing.T) {
	order, qty := Quantities([]LineItem{
		{ProductID: "b", Quantity: 1},
		{ProductID: "a", Quantity: 2},
		{ProductID: "b", Quantity: 3},
	})
	if len(order) != 2 || order[0] != "b" || order[1] != "a" {
		t.Fatalf("unexpected order: %v", order)
	}
	if qty["b"] != 4 || qty["a"] != 2 {
		t.Fatalf("unexpected quantities: %v", qty)
	}
}

func TestOrderPatch_ApplyCopiesItems(t *testing.T) {
	items := []LineItem{{ProductID: "p1", Quantity: 1}}
	status := StatusCompleted
	o := &Order{Status: StatusPending, Total: 10}

	OrderPatch{Items: &items, Status: &status}.Apply(o)
	items[0].Quantity = 99

	if o.Items[0].Quantity != 1 {
		t.Error("patch must copy the item slice")
	}
	if o.Status != StatusCompleted || o.Total != 10 {
		t.Errorf("unexpected order after patch: %+v", o)
	}
}

func TestStockError_MatchesSentinel(t *testing.T) {
	var err error = &StockError{Product: "Silla", Requested: 5, Available: 2}
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatal("StockError should match ErrInsufficientStock")
	}
	if got := err.Error(); got != `product "Silla" exceeds the available quantity (requested 5, available 2)` {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestNotFoundErrorsShareSentinel(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrClientNotFound, ErrProductNotFound, ErrOrderNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v should wrap ErrNotFound", err)
		}
	}
	if !errors.Is(Invalid("bad %s", "input"), ErrValidation) {
		t.Error("Invalid should wrap ErrValidation")
	}
}
