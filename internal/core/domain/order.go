package domain

import "time"

// OrderStatus represents the lifecycle state of an order. Values are the
// ones persisted and exposed by the API.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDIENTE"
	StatusCompleted OrderStatus = "COMPLETADO"
	StatusCancelled OrderStatus = "CANCELADO"
)

// validTransitions defines the allowed state machine transitions.
// COMPLETADO and CANCELADO are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// LineItem is one product reservation inside an order. Name and Price are
// snapshots taken when the quantity was reserved.
type LineItem struct {
	ProductID string  `json:"id"`
	Quantity  int     `json:"cantidad"`
	Name      string  `json:"nombre"`
	Price     float64 `json:"precio"`
}

// Order is placed by a seller on behalf of one of their clients.
type Order struct {
	ID        string      `json:"id"`
	Items     []LineItem  `json:"pedido"`
	Total     float64     `json:"total"`
	ClientID  string      `json:"cliente"`
	SellerID  string      `json:"vendedor"`
	Status    OrderStatus `json:"estado"`
	CreatedAt time.Time   `json:"creado"`
}

// OrderPatch lists the order fields an update may change.
type OrderPatch struct {
	Items    *[]LineItem
	Total    *float64
	ClientID *string
	Status   *OrderStatus
}

func (p OrderPatch) Apply(o *Order) {
	if p.Items != nil {
		o.Items = append([]LineItem(nil), (*p.Items)...)
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.ClientID != nil {
		o.ClientID = *p.ClientID
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
}

// Quantities sums the reserved quantity per product, in first-seen order.
func Quantities(items []LineItem) (order []string, qty map[string]int) {
	qty = make(map[string]int, len(items))
	for _, it := range items {
		if _, seen := qty[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		qty[it.ProductID] += it.Quantity
	}
	return order, qty
}
