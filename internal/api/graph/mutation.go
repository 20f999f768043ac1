package graph

import (
	"context"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/ventascrm/sales-api/internal/api/metrics"
	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/ports"
	"github.com/ventascrm/sales-api/internal/core/service"
)

type usuarioInput struct {
	Nombre   string
	Apellido string
	Email    string
	Password string
}

func (r *Resolver) NuevoUsuario(ctx context.Context, args struct{ Input usuarioInput }) (*userResolver, error) {
	u, err := r.auth.Register(ctx, ports.RegisterInput{
		Name:     args.Input.Nombre,
		Surname:  args.Input.Apellido,
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	if err != nil {
		return nil, r.fail("nuevoUsuario", err)
	}
	return &userResolver{u: u}, nil
}

type autenticarInput struct {
	Email    string
	Password string
}

func (r *Resolver) AutenticarUsuario(ctx context.Context, args struct{ Input autenticarInput }) (*tokenResolver, error) {
	token, _, err := r.auth.Login(ctx, args.Input.Email, args.Input.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(strings.ToLower(CodeOf(err))).Inc()
		return nil, r.fail("autenticarUsuario", err)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	return &tokenResolver{token: token}, nil
}

type productoInput struct {
	Nombre     string
	Existencia int32
	Precio     float64
}

func (r *Resolver) NuevoProducto(ctx context.Context, args struct{ Input productoInput }) (*productResolver, error) {
	if _, err := service.RequireIdentity(ctx); err != nil {
		return nil, r.fail("nuevoProducto", err)
	}
	p, err := r.products.Create(ctx, ports.CreateProductInput{
		Name:  args.Input.Nombre,
		Stock: int(args.Input.Existencia),
		Price: args.Input.Precio,
	})
	if err != nil {
		return nil, r.fail("nuevoProducto", err)
	}
	return &productResolver{p: p}, nil
}

type actualizarProductoInput struct {
	Nombre     *string
	Existencia *int32
	Precio     *float64
}

func (r *Resolver) ActualizarProducto(ctx context.Context, args struct {
	ID    graphql.ID
	Input actualizarProductoInput
}) (*productResolver, error) {
	if _, err := service.RequireIdentity(ctx); err != nil {
		return nil, r.fail("actualizarProducto", err)
	}
	in := ports.UpdateProductInput{Name: args.Input.Nombre, Price: args.Input.Precio}
	if args.Input.Existencia != nil {
		stock := int(*args.Input.Existencia)
		in.Stock = &stock
	}
	p, err := r.products.Update(ctx, string(args.ID), in)
	if err != nil {
		return nil, r.fail("actualizarProducto", err)
	}
	return &productResolver{p: p}, nil
}

func (r *Resolver) EliminarProducto(ctx context.Context, args idArgs) (string, error) {
	if _, err := service.RequireIdentity(ctx); err != nil {
		return "", r.fail("eliminarProducto", err)
	}
	if err := r.products.Delete(ctx, string(args.ID)); err != nil {
		return "", r.fail("eliminarProducto", err)
	}
	return "Producto eliminado", nil
}

type clienteInput struct {
	Nombre   string
	Apellido string
	Empresa  string
	Email    string
	Telefono *string
}

func (r *Resolver) NuevoCliente(ctx context.Context, args struct{ Input clienteInput }) (*clientResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("nuevoCliente", err)
	}
	in := ports.CreateClientInput{
		Name:    args.Input.Nombre,
		Surname: args.Input.Apellido,
		Company: args.Input.Empresa,
		Email:   args.Input.Email,
	}
	if args.Input.Telefono != nil {
		in.Phone = *args.Input.Telefono
	}
	c, err := r.clients.Create(ctx, in, identity)
	if err != nil {
		return nil, r.fail("nuevoCliente", err)
	}
	return &clientResolver{c: c}, nil
}

type actualizarClienteInput struct {
	Nombre   *string
	Apellido *string
	Empresa  *string
	Email    *string
	Telefono *string
}

func (r *Resolver) ActualizarCliente(ctx context.Context, args struct {
	ID    graphql.ID
	Input actualizarClienteInput
}) (*clientResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("actualizarCliente", err)
	}
	c, err := r.clients.Update(ctx, string(args.ID), ports.UpdateClientInput{
		Name:    args.Input.Nombre,
		Surname: args.Input.Apellido,
		Company: args.Input.Empresa,
		Email:   args.Input.Email,
		Phone:   args.Input.Telefono,
	}, identity)
	if err != nil {
		return nil, r.fail("actualizarCliente", err)
	}
	return &clientResolver{c: c}, nil
}

func (r *Resolver) EliminarCliente(ctx context.Context, args idArgs) (string, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return "", r.fail("eliminarCliente", err)
	}
	if err := r.clients.Delete(ctx, string(args.ID), identity); err != nil {
		return "", r.fail("eliminarCliente", err)
	}
	return "Cliente eliminado", nil
}

type pedidoProductoInput struct {
	ID       graphql.ID
	Cantidad int32
}

func lines(in []pedidoProductoInput) []ports.OrderLineInput {
	out := make([]ports.OrderLineInput, len(in))
	for i, l := range in {
		out[i] = ports.OrderLineInput{ProductID: string(l.ID), Quantity: int(l.Cantidad)}
	}
	return out
}

type pedidoInput struct {
	Pedido  []pedidoProductoInput
	Total   float64
	Cliente graphql.ID
}

func (r *Resolver) NuevoPedido(ctx context.Context, args struct{ Input pedidoInput }) (*orderResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("nuevoPedido", err)
	}
	o, err := r.orders.Create(ctx, ports.CreateOrderInput{
		ClientID:       string(args.Input.Cliente),
		Items:          lines(args.Input.Pedido),
		Total:          args.Input.Total,
		IdempotencyKey: IdempotencyKey(ctx),
	}, identity)
	if err != nil {
		return nil, r.fail("nuevoPedido", err)
	}
	metrics.OrdersCreatedTotal.Inc()
	return &orderResolver{o: o, root: r}, nil
}

type actualizarPedidoInput struct {
	Pedido  *[]pedidoProductoInput
	Total   *float64
	Cliente *graphql.ID
	Estado  *string
}

func (r *Resolver) ActualizarPedido(ctx context.Context, args struct {
	ID    graphql.ID
	Input actualizarPedidoInput
}) (*orderResolver, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return nil, r.fail("actualizarPedido", err)
	}

	in := ports.UpdateOrderInput{Total: args.Input.Total}
	if args.Input.Pedido != nil {
		in.Items = lines(*args.Input.Pedido)
	}
	if args.Input.Cliente != nil {
		clientID := string(*args.Input.Cliente)
		in.ClientID = &clientID
	}
	if args.Input.Estado != nil {
		status := domain.OrderStatus(*args.Input.Estado)
		in.Status = &status
	}

	o, err := r.orders.Update(ctx, string(args.ID), in, identity)
	if err != nil {
		return nil, r.fail("actualizarPedido", err)
	}
	if in.Status != nil {
		metrics.OrderTransitionsTotal.WithLabelValues(string(o.Status)).Inc()
	}
	return &orderResolver{o: o, root: r}, nil
}

func (r *Resolver) EliminarPedido(ctx context.Context, args idArgs) (string, error) {
	identity, err := service.RequireIdentity(ctx)
	if err != nil {
		return "", r.fail("eliminarPedido", err)
	}
	if err := r.orders.Delete(ctx, string(args.ID), identity); err != nil {
		return "", r.fail("eliminarPedido", err)
	}
	return "Pedido eliminado", nil
}
