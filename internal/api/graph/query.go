package graph

import (
	"context"
	"errors"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/service"
)

type idArgs struct {
	ID graphql.ID
}

// ObtenerUsuario returns the caller, or null for anonymous requests.
func (r *Resolver) ObtenerUsuario(ctx context.Context) (*userResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if errors.Is(err, domain.ErrUnauthenticated) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("obtenerUsuario", err)
	}
	u, err := r.auth.CurrentUser(ctx, identity)
	if err != nil {
		return nil, r.fail("obtenerUsuario", err)
	}
	return &userResolver{u: u}, nil
}

func (r *Resolver) ObtenerProductos(ctx context.Context) ([]*productResolver, error) {
	list, err := r.products.List(ctx)
	if err != nil {
		return nil, r.fail("obtenerProductos", err)
	}
	return products(list), nil
}

func (r *Resolver) ObtenerProducto(ctx context.Context, args idArgs) (*productResolver, error) {
	p, err := r.products.Get(ctx, string(args.ID))
	if err != nil {
		return nil, r.fail("obtenerProducto", err)
	}
	return &productResolver{p: p}, nil
}

func (r *Resolver) BuscarProducto(ctx context.Context, args struct{ Texto string }) ([]*productResolver, error) {
	list, err := r.products.Search(ctx, args.Texto)
	if err != nil {
		return nil, r.fail("buscarProducto", err)
	}
	return products(list), nil
}

func (r *Resolver) ObtenerClientes(ctx context.Context) ([]*clientResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("obtenerClientes", err)
	}
	list, err := r.clients.List(ctx, identity)
	if err != nil {
		return nil, r.fail("obtenerClientes", err)
	}
	return clients(list), nil
}

func (r *Resolver) ObtenerClientesVendedor(ctx context.Context) ([]*clientResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("obtenerClientesVendedor", err)
	}
	list, err := r.clients.ListBySeller(ctx, identity)
	if err != nil {
		return nil, r.fail("obtenerClientesVendedor", err)
	}
	return clients(list), nil
}

func (r *Resolver) ObtenerCliente(ctx context.Context, args idArgs) (*clientResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("obtenerCliente", err)
	}
	c, err := r.clients.Get(ctx, string(args.ID), identity)
	if err != nil {
		return nil, r.fail("obtenerCliente", err)
	}
	return &clientResolver{c: c}, nil
}

func (r *Resolver) ObtenerPedidos(ctx context.Context) ([]*orderResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("obtenerPedidos", err)
	}
	list, err := r.orders.List(ctx, identity)
	if err != nil {
		return nil, r.fail("obtenerPedidos", err)
	}
	return r.ordersOf(list), nil
}

func (r *Resolver) ObtenerPedidosVendedor(ctx context.Context) ([]*orderResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("obtenerPedidosVendedor", err)
	}
	list, err := r.orders.ListBySeller(ctx, identity)
	if err != nil {
		return nil, r.fail("obtenerPedidosVendedor", err)
	}
	return r.ordersOf(list), nil
}

func (r *Resolver) ObtenerPedido(ctx context.Context, args idArgs) (*orderResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("obtenerPedido", err)
	}
	o, err := r.orders.Get(ctx, string(args.ID), identity)
	if err != nil {
		return nil, r.fail("obtenerPedido", err)
	}
	return &orderResolver{o: o, root: r}, nil
}

func (r *Resolver) ObtenerPedidosEstado(ctx context.Context, args struct{ Estado string }) ([]*orderResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("obtenerPedidosEstado", err)
	}
	list, err := r.orders.ListByStatus(ctx, domain.OrderStatus(args.Estado), identity)
	if err != nil {
		return nil, r.fail("obtenerPedidosEstado", err)
	}
	return r.ordersOf(list), nil
}

type rankingArgs struct {
	Limite *int32
}

func (a rankingArgs) limit() int {
	if a.Limite == nil {
		return 0
	}
	return int(*a.Limite)
}

func (r *Resolver) MejoresClientes(ctx context.Context, args rankingArgs) ([]*topClientResolver, error) {
	ranking, err := r.reports.TopClients(ctx, args.limit())
	if err != nil {
		return nil, r.fail("mejoresClientes", err)
	}
	out := make([]*topClientResolver, len(ranking))
	for i, row := range ranking {
		out[i] = &topClientResolver{r: row}
	}
	return out, nil
}

func (r *Resolver) MejoresVendedores(ctx context.Context, args rankingArgs) ([]*topSellerResolver, error) {
	ranking, err := r.reports.TopSellers(ctx, args.limit())
	if err != nil {
		return nil, r.fail("mejoresVendedores", err)
	}
	out := make([]*topSellerResolver, len(ranking))
	for i, row := range ranking {
		out[i] = &topSellerResolver{r: row}
	}
	return out, nil
}
