package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/vehicle-marketplace/internal/api/http"
	"github.com/spec-kit/vehicle-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/vehicle-marketplace/internal/auth"
	"github.com/spec-kit/vehicle-marketplace/internal/config"
	"github.com/spec-kit/vehicle-marketplace/internal/events"
	"github.com/spec-kit/vehicle-marketplace/internal/observability"
	"github.com/spec-kit/vehicle-marketplace/internal/persistence"
	"github.com/spec-kit/vehicle-marketplace/internal/repository"
	"github.com/spec-kit/vehicle-marketplace/internal/service"
	"github.com/spec-kit/vehicle-marketplace/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartTelemetryWorker(dispatcher, metrics, logger)

	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret)
	cookies := auth.NewCookieManager()
	policy := auth.DefaultRolePolicy()
	routeGuard := auth.NewRouteGuard(policy, cookies, logger)
	handlerGuard := auth.NewHandlerGuard(codec, cookies, dispatcher, logger)

	authService := service.NewAuthService(*cfg, userRepo, codec, dispatcher)
	ownership := service.NewOwnershipService(productRepo, redis, cfg.Redis.OwnershipCacheTTL(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:       handlers.NewAuthHandler(authService, cookies),
		Products:   handlers.NewProductsHandler(productRepo, ownership),
		Vehicles:   handlers.NewVehiclesHandler(vehicleRepo),
		Pages:      handlers.NewPagesHandler(),
		RouteGuard: routeGuard,
		Guard:      handlerGuard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
