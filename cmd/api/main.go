package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/api/http"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/api/http/handlers"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/auth"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/config"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/events"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/observability"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/payment"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/persistence"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/repository"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/service"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/worker"
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
	listingRepo := repository.NewListingRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	confirmations := payment.NewRedisConfirmationStore(redis.Client)
	gateway := payment.NewStripeGateway(cfg.Stripe)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo, dispatcher)
	listingService := service.NewListingService(listingRepo)
	applicationService := service.NewApplicationService(applicationRepo, confirmations, dispatcher)
	paymentService := service.NewPaymentService(gateway, applicationService, cfg.Stripe, logger)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService, userService),
		Listings:       handlers.NewListingsHandler(listingService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		AuthMiddleware: authMiddleware,
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
