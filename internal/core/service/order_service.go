package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/ports"
)

const tracerName = "github.com/ventascrm/sales-api/internal/core/service"

// OrderService places and maintains orders, reserving product stock as line
// items are accepted.
//
// Line items are processed one at a time in input order. There is no
// transaction spanning the items of one order: when item N fails, the
// reservations made for items 0..N-1 stay committed.
type OrderService struct {
	orders   ports.OrderRepository
	clients  ports.ClientRepository
	products ports.ProductRepository
	idem     ports.IdempotencyStore // optional
	log      zerolog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewOrderService wires the order engine. idem may be nil, in which case
// idempotency keys are ignored.
func NewOrderService(
	orders ports.OrderRepository,
	clients ports.ClientRepository,
	products ports.ProductRepository,
	idem ports.IdempotencyStore,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		clients:  clients,
		products: products,
		idem:     idem,
		log:      log,
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
}

// Create places a PENDIENTE order for one of owner's clients.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput, owner *domain.Identity) (_ *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Create", trace.WithAttributes(
		attribute.String("client_id", input.ClientID),
		attribute.Int("items", len(input.Items)),
	))
	defer func() { endSpan(span, err) }()

	if err := requireAuthenticated(owner); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.IdempotencyKey == "" || s.idem == nil {
		return s.create(ctx, input, owner)
	}

	key := "order:" + owner.ID + ":" + input.IdempotencyKey
	orderID, claimed, err := s.idem.Claim(ctx, key)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency claim failed, processing anyway")
		return s.create(ctx, input, owner)
	case !claimed && orderID != "":
		return s.replay(ctx, orderID, owner, input.IdempotencyKey)
	case !claimed:
		return nil, domain.ErrDuplicateRequest
	}

	created, err := s.create(ctx, input, owner)
	if err != nil {
		if relErr := s.idem.Release(ctx, key); relErr != nil {
			s.log.Warn().Err(relErr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to release idempotency key")
		}
		return nil, err
	}
	if err := s.idem.Complete(ctx, key, created.ID); err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to record idempotency key")
	}
	return created, nil
}

func (s *OrderService) create(ctx context.Context, input ports.CreateOrderInput, owner *domain.Identity) (*domain.Order, error) {
	client, err := s.clients.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnership(client.SellerID, owner); err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(input.Items))
	for _, line := range input.Items {
		p, err := s.reserve(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.LineItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			Name:      p.Name,
			Price:     p.Price,
		})
	}

	created, err := s.orders.Create(ctx, &domain.Order{
		Items:     items,
		Total:     input.Total,
		ClientID:  client.ID,
		SellerID:  owner.ID,
		Status:    domain.StatusPending,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("client_id", client.ID).Int("reserved_items", len(items)).Msg("failed to persist order after reserving stock")
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info().
		Str("order_id", created.ID).
		Str("client_id", client.ID).
		Str("seller_id", owner.ID).
		Float64("total", created.Total).
		Msg("order created")
	return created, nil
}

func (s *OrderService) replay(ctx context.Context, orderID string, owner *domain.Identity, key string) (*domain.Order, error) {
	existing, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnership(existing.SellerID, owner); err != nil {
		return nil, err
	}
	s.log.Info().Str("idempotency_key", key).Str("order_id", existing.ID).Msg("idempotent replay")
	return existing, nil
}

func (s *OrderService) Get(ctx context.Context, id string, owner *domain.Identity) (*domain.Order, error) {
	return s.owned(ctx, id, owner)
}

// List returns every order regardless of seller.
func (s *OrderService) List(ctx context.Context, identity *domain.Identity) ([]*domain.Order, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}
	return s.orders.List(ctx, ports.OrderFilter{})
}

func (s *OrderService) ListBySeller(ctx context.Context, owner *domain.Identity) ([]*domain.Order, error) {
	if err := requireAuthenticated(owner); err != nil {
		return nil, err
	}
	return s.orders.List(ctx, ports.OrderFilter{SellerID: owner.ID})
}

func (s *OrderService) ListByStatus(ctx context.Context, status domain.OrderStatus, owner *domain.Identity) ([]*domain.Order, error) {
	if err := requireAuthenticated(owner); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Invalid("unknown order status %q", status)
	}
	return s.orders.List(ctx, ports.OrderFilter{SellerID: owner.ID, Status: status})
}

// Update applies a partial change to one of owner's orders.
//
// New line items are reconciled against the previous ones: only the
// difference per product is reserved or released. When any product cannot
// be adjusted, the adjustments already made are reverted so stock keeps
// matching the stored items. Line items can only change while the order is
// PENDIENTE, and cancelling returns the reserved stock.
func (s *OrderService) Update(ctx context.Context, id string, input ports.UpdateOrderInput, owner *domain.Identity) (_ *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Update", trace.WithAttributes(attribute.String("order_id", id)))
	defer func() { endSpan(span, err) }()

	if err := requireAuthenticated(owner); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Items != nil && len(input.Items) == 0 {
		return nil, domain.Invalid("pedido must contain at least one item")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, domain.Invalid("unknown order status %q", *input.Status)
	}

	order, err := s.owned(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	clientID := order.ClientID
	if input.ClientID != nil {
		clientID = *input.ClientID
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnership(client.SellerID, owner); err != nil {
		return nil, err
	}

	next := order.Status
	if input.Status != nil && *input.Status != order.Status {
		if !order.Status.CanTransitionTo(*input.Status) {
			return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, *input.Status)
		}
		next = *input.Status
	}
	if input.Items != nil && order.Status.Terminal() {
		return nil, fmt.Errorf("%w: line items of a %s order cannot change", domain.ErrInvalidTransition, order.Status)
	}

	patch := domain.OrderPatch{Total: input.Total}
	if input.ClientID != nil {
		patch.ClientID = &client.ID
	}

	items := order.Items
	var applied []stockAdjustment
	if input.Items != nil {
		items, applied, err = s.reconcile(ctx, order.Items, input.Items)
		if err != nil {
			return nil, err
		}
		patch.Items = &items
	}

	if next != order.Status {
		patch.Status = &next
		if next == domain.StatusCancelled {
			if err := s.release(ctx, items); err != nil {
				s.undo(ctx, applied)
				return nil, err
			}
		}
	}

	updated, err := s.orders.Update(ctx, id, patch)
	if err != nil {
		s.log.Error().Err(err).Str("order_id", id).Msg("failed to persist order update")
		s.undo(ctx, applied)
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.log.Info().Str("order_id", id).Str("status", string(updated.Status)).Msg("order updated")
	return updated, nil
}

// Delete removes one of owner's orders. Reserved stock is not returned.
func (s *OrderService) Delete(ctx context.Context, id string, owner *domain.Identity) (err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.String("order_id", id)))
	defer func() { endSpan(span, err) }()

	if _, err := s.owned(ctx, id, owner); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	s.log.Info().Str("order_id", id).Str("seller_id", owner.ID).Msg("order deleted")
	return nil
}

func (s *OrderService) owned(ctx context.Context, id string, owner *domain.Identity) (*domain.Order, error) {
	if err := requireAuthenticated(owner); err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnership(o.SellerID, owner); err != nil {
		return nil, err
	}
	return o, nil
}

// reserve takes qty units of a product, failing with a *domain.StockError
// that names the product when there are not enough.
func (s *OrderService) reserve(ctx context.Context, productID string, qty int) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if qty > p.Stock {
		return nil, &domain.StockError{ProductID: p.ID, Product: p.Name, Requested: qty, Available: p.Stock}
	}
	if err := s.products.Reserve(ctx, p.ID, qty); err != nil {
		if !errors.Is(err, domain.ErrInsufficientStock) {
			return nil, fmt.Errorf("reserve %s: %w", p.ID, err)
		}
		// Another order took the stock between the read and the decrement.
		available := 0
		if fresh, ferr := s.products.FindByID(ctx, p.ID); ferr == nil {
			available = fresh.Stock
		}
		return nil, &domain.StockError{ProductID: p.ID, Product: p.Name, Requested: qty, Available: available}
	}
	return p, nil
}

// stockAdjustment records one stock change made by reconcile. A positive
// delta was reserved, a negative one released.
type stockAdjustment struct {
	productID string
	delta     int
}

// reconcile reserves or releases the per-product difference between prev
// and lines, in the order products first appear in lines, then releases
// products that were dropped. On failure every adjustment made so far is
// reverted before the error is returned.
func (s *OrderService) reconcile(ctx context.Context, prev []domain.LineItem, lines []ports.OrderLineInput) (_ []domain.LineItem, applied []stockAdjustment, err error) {
	defer func() {
		if err != nil {
			s.undo(ctx, applied)
			applied = nil
		}
	}()

	prevOrder, before := domain.Quantities(prev)

	var nextOrder []string
	after := make(map[string]int, len(lines))
	for _, l := range lines {
		if _, seen := after[l.ProductID]; !seen {
			nextOrder = append(nextOrder, l.ProductID)
		}
		after[l.ProductID] += l.Quantity
	}

	products := make(map[string]*domain.Product, len(nextOrder))
	for _, pid := range nextOrder {
		delta := after[pid] - before[pid]
		var p *domain.Product
		if delta > 0 {
			p, err = s.reserve(ctx, pid, delta)
		} else {
			p, err = s.products.FindByID(ctx, pid)
			if err == nil && delta < 0 {
				err = s.products.Release(ctx, pid, -delta)
			}
		}
		if err != nil {
			return nil, applied, err
		}
		if delta != 0 {
			applied = append(applied, stockAdjustment{productID: pid, delta: delta})
		}
		products[pid] = p
	}

	for _, pid := range prevOrder {
		if _, kept := after[pid]; kept {
			continue
		}
		if err = s.releaseOne(ctx, pid, before[pid]); err != nil {
			return nil, applied, err
		}
		applied = append(applied, stockAdjustment{productID: pid, delta: -before[pid]})
	}

	items := make([]domain.LineItem, 0, len(lines))
	for _, l := range lines {
		p := products[l.ProductID]
		items = append(items, domain.LineItem{
			ProductID: p.ID,
			Quantity:  l.Quantity,
			Name:      p.Name,
			Price:     p.Price,
		})
	}
	return items, applied, nil
}

// undo reverts adjustments in reverse order. Failures are logged; the
// caller already has an error to report.
func (s *OrderService) undo(ctx context.Context, applied []stockAdjustment) {
	for i := len(applied) - 1; i >= 0; i-- {
		a := applied[i]
		var err error
		if a.delta > 0 {
			err = s.products.Release(ctx, a.productID, a.delta)
		} else {
			err = s.products.Reserve(ctx, a.productID, -a.delta)
		}
		if err != nil {
			s.log.Warn().Err(err).Str("product_id", a.productID).Int("delta", a.delta).Msg("failed to revert stock adjustment")
		}
	}
}

// release returns the stock held by items.
func (s *OrderService) release(ctx context.Context, items []domain.LineItem) error {
	order, qty := domain.Quantities(items)
	for _, pid := range order {
		if err := s.releaseOne(ctx, pid, qty[pid]); err != nil {
			return err
		}
	}
	return nil
}

// releaseOne skips products that no longer exist.
func (s *OrderService) releaseOne(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return nil
	}
	err := s.products.Release(ctx, productID, qty)
	if errors.Is(err, domain.ErrProductNotFound) {
		s.log.Warn().Str("product_id", productID).Int("quantity", qty).Msg("cannot return stock to deleted product")
		return nil
	}
	if err != nil {
		return fmt.Errorf("release %s: %w", productID, err)
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
