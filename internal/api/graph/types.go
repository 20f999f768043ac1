package graph

import (
	"context"
	"errors"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

type userResolver struct{ u *domain.User }

func (r *userResolver) ID() graphql.ID { return graphql.ID(r.u.ID) }
func (r *userResolver) Nombre() string { return r.u.Name }
func (r *userResolver) Apellido() string { return r.u.Surname }
func (r *userResolver) Email() string { return r.u.Email }
func (r *userResolver) Creado() string { return timestamp(r.u.CreatedAt) }

type tokenResolver struct{ token string }

func (r *tokenResolver) Token() string { return r.token }

type productResolver struct{ p *domain.Product }

func (r *productResolver) ID() graphql.ID { return graphql.ID(r.p.ID) }
func (r *productResolver) Nombre() string { return r.p.Name }
func (r *productResolver) Existencia() int32 { return int32(r.p.Stock) }
func (r *productResolver) Precio() float64 { return r.p.Price }
func (r *productResolver) Creado() string { return timestamp(r.p.CreatedAt) }

func products(list []*domain.Product) []*productResolver {
	out := make([]*productResolver, len(list))
	for i, p := range list {
		out[i] = &productResolver{p: p}
	}
	return out
}

type clientResolver struct{ c *domain.Client }

func (r *clientResolver) ID() graphql.ID { return graphql.ID(r.c.ID) }
func (r *clientResolver) Nombre() string { return r.c.Name }
func (r *clientResolver) Apellido() string { return r.c.Surname }
func (r *clientResolver) Empresa() string { return r.c.Company }
func (r *clientResolver) Email() string { return r.c.Email }
func (r *clientResolver) Vendedor() graphql.ID { return graphql.ID(r.c.SellerID) }
func (r *clientResolver) Creado() string { return timestamp(r.c.CreatedAt) }

func (r *clientResolver) Telefono() *string {
	if r.c.Phone == "" {
		return nil
	}
	return &r.c.Phone
}

func clients(list []*domain.Client) []*clientResolver {
	out := make([]*clientResolver, len(list))
	for i, c := range list {
		out[i] = &clientResolver{c: c}
	}
	return out
}

type lineItemResolver struct{ it domain.LineItem }

func (r *lineItemResolver) ID() graphql.ID { return graphql.ID(r.it.ProductID) }
func (r *lineItemResolver) Cantidad() int32 { return int32(r.it.Quantity) }
func (r *lineItemResolver) Nombre() string { return r.it.Name }
func (r *lineItemResolver) Precio() float64 { return r.it.Price }

type orderResolver struct {
	o    *domain.Order
	root *Resolver
}

func (r *orderResolver) ID() graphql.ID { return graphql.ID(r.o.ID) }
func (r *orderResolver) Total() float64 { return r.o.Total }
func (r *orderResolver) Vendedor() graphql.ID { return graphql.ID(r.o.SellerID) }
func (r *orderResolver) Estado() string { return string(r.o.Status) }
func (r *orderResolver) Creado() string { return timestamp(r.o.CreatedAt) }

func (r *orderResolver) Pedido() []*lineItemResolver {
	out := make([]*lineItemResolver, len(r.o.Items))
	for i, it := range r.o.Items {
		out[i] = &lineItemResolver{it: it}
	}
	return out
}

// Cliente is null once the referenced client has been deleted.
func (r *orderResolver) Cliente(ctx context.Context) (*clientResolver, error) {
	c, err := r.root.clients.Lookup(ctx, r.o.ClientID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.root.fail("Pedido.cliente", err)
	}
	return &clientResolver{c: c}, nil
}

func (r *Resolver) ordersOf(list []*domain.Order) []*orderResolver {
	out := make([]*orderResolver, len(list))
	for i, o := range list {
		out[i] = &orderResolver{o: o, root: r}
	}
	return out
}

type topClientResolver struct{ r domain.ClientRanking }

func (t *topClientResolver) Total() float64 { return t.r.Total }

func (t *topClientResolver) Cliente() []*clientResolver {
	if t.r.Client == nil {
		return []*clientResolver{}
	}
	return []*clientResolver{{c: t.r.Client}}
}

type topSellerResolver struct{ r domain.SellerRanking }

func (t *topSellerResolver) Total() float64 { return t.r.Total }

func (t *topSellerResolver) Vendedor() []*userResolver {
	if t.r.Seller == nil {
		return []*userResolver{}
	}
	return []*userResolver{{u: t.r.Seller}}
}
