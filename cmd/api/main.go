package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/freshmart/supermarket-service/internal/api/http"
	"github.com/freshmart/supermarket-service/internal/api/http/handlers"
	"github.com/freshmart/supermarket-service/internal/auth"
	"github.com/freshmart/supermarket-service/internal/config"
	"github.com/freshmart/supermarket-service/internal/events"
	"github.com/freshmart/supermarket-service/internal/identity"
	"github.com/freshmart/supermarket-service/internal/observability"
	"github.com/freshmart/supermarket-service/internal/persistence"
	"github.com/freshmart/supermarket-service/internal/repository"
	"github.com/freshmart/supermarket-service/internal/service"
	"github.com/freshmart/supermarket-service/internal/worker"
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
	storeRepo := repository.NewStoreRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	storeService := service.NewStoreService(storeRepo, userRepo, dispatcher)
	productService := service.NewProductService(productRepo, redis.Client, dispatcher, logger)

	githubProvider := identity.NewGithubProvider(cfg.OAuth)
	stateStore := persistence.NewRedisStateStore(redis)
	onboardingService := service.NewOnboardingService(
		cfg.Auth, cfg.OAuth, userRepo, authService.TokenManager(), stateStore, dispatcher)

	gate := auth.NewGate(authService.TokenManager(), userRepo, cfg.Auth.SkipPaths)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:    handlers.NewUsersHandler(authService, userService),
		Stores:   handlers.NewStoresHandler(storeService),
		Products: handlers.NewProductsHandler(productService),
		OAuth:    handlers.NewOAuthHandler(githubProvider, onboardingService, cfg.OAuth.StateTTL()),
		Gate:     gate,
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
