package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/ventascrm/sales-api/internal/api"
	"github.com/ventascrm/sales-api/internal/api/graph"
	"github.com/ventascrm/sales-api/internal/core/ports"
	"github.com/ventascrm/sales-api/internal/core/service"
	"github.com/ventascrm/sales-api/internal/infrastructure/config"
	"github.com/ventascrm/sales-api/internal/infrastructure/db/memory"
	"github.com/ventascrm/sales-api/internal/infrastructure/db/mongo"
	"github.com/ventascrm/sales-api/internal/infrastructure/db/redis"
	"github.com/ventascrm/sales-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type repositories struct {
	users    ports.UserRepository
	clients  ports.ClientRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "sales-api",
		Env:     cfg.Env,
	})

	repos, db, closeStore := openStore(ctx, cfg)
	defer closeStore()

	var (
		rdb  *goredis.Client
		idem ports.IdempotencyStore
	)
	if cfg.RedisEnabled() {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis idempotency store enabled")
	} else if cfg.StoreDriver == config.DriverMemory {
		idem = memory.NewIdempotencyStore()
	}

	authSvc := service.NewAuthService(repos.users, service.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}, log)
	clientSvc := service.NewClientService(repos.clients, log)
	productSvc := service.NewProductService(repos.products, log)
	orderSvc := service.NewOrderService(repos.orders, repos.clients, repos.products, idem, log)
	reportSvc := service.NewReportService(repos.orders, repos.clients, repos.users, log)

	resolver := graph.NewResolver(graph.Services{
		Auth:     authSvc,
		Clients:  clientSvc,
		Products: productSvc,
		Orders:   orderSvc,
		Reports:  reportSvc,
	}, log)
	schema, err := graph.NewSchema(resolver, cfg.GraphQLMaxDepth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build graphql schema")
	}

	e := api.NewRouter(api.Dependencies{
		Verifier: authSvc,
		Schema:   schema,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStore connects the configured persistence backend. The returned
// database is nil for the memory driver.
func openStore(ctx context.Context, cfg *config.Config) (repositories, *mongodriver.Database, func()) {
	log := logger.Get()
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return repositories{
			users:    memory.NewUserRepository(),
			clients:  memory.NewClientRepository(),
			products: memory.NewProductRepository(),
			orders:   memory.NewOrderRepository(),
		}, nil, func() {}
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	store := mongo.NewStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}
	return repositories{
		users:    store.Users,
		clients:  store.Clients,
		products: store.Products,
		orders:   store.Orders,
	}, db, closeFn
}
