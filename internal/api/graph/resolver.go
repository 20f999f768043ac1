package graph

import (
	"github.com/rs/zerolog"

	"github.com/ventascrm/sales-api/internal/core/ports"
)

// Services are the use cases the resolvers delegate to.
type Services struct {
	Auth     ports.AuthService
	Clients  ports.ClientService
	Products ports.ProductService
	Orders   ports.OrderService
	Reports  ports.ReportService
}

// Resolver is the root resolver for both queries and mutations.
type Resolver struct {
	auth     ports.AuthService
	clients  ports.ClientService
	products ports.ProductService
	orders   ports.OrderService
	reports  ports.ReportService
	log      zerolog.Logger
}

func NewResolver(svc Services, log zerolog.Logger) *Resolver {
	return &Resolver{
		auth:     svc.Auth,
		clients:  svc.Clients,
		products: svc.Products,
		orders:   svc.Orders,
		reports:  svc.Reports,
		log:      log,
	}
}
