package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/usecase/fulfillment"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/usecase/generation"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/inference"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/payment"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/storage"
	timeProvider "github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction(), coreport.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	for _, warning := range cfg.Warnings() {
		appLogger.Warn("Unsafe production configuration", map[string]any{"warning": warning})
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Server stopped with error", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger coreport.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := timeProvider.NewRealTimeProvider()

	// Database
	dbManager := database.NewManager(&cfg.Database, appLogger, tp)
	db, err := dbManager.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = dbManager.Close() }()

	if cfg.Database.AutoMigrate {
		if err := dbManager.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db, tp, appLogger)
	generationRepo := repository.NewGenerationRepository(db, tp, appLogger)
	orderRepo := repository.NewOrderRepository(db, tp, appLogger)
	uow := dbManager.CreateUnitOfWork()

	// External services
	payments := payment.NewStripeGateway(cfg.Stripe.Config, appLogger)
	model, err := inference.NewReplicateModel(cfg.Replicate, appLogger)
	if err != nil {
		return err
	}
	imageHost, err := storage.NewS3ImageHost(cfg.Storage, appLogger)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenManager(cfg.Auth, tp)

	// Use cases
	validator := generation.NewOptionsValidator()
	executor := generation.NewExecutor(generationRepo, model, imageHost, validator, appLogger)
	runner := generation.NewRunner(executor.Execute, tp, appLogger, coreport.Duration(cfg.Generation.ExecutionTimeout))

	generationService := generation.NewService(generationRepo, orderRepo, runner, appLogger)
	fulfillmentService := fulfillment.NewService(
		uow,
		generationRepo,
		userRepo,
		payments,
		validator,
		runner,
		tp,
		appLogger,
		cfg.Checkout(),
	)

	// HTTP
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp, cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Webhook:    handler.NewWebhookHandler(fulfillmentService, appLogger),
		Checkout:   handler.NewCheckoutHandler(fulfillmentService),
		Generation: handler.NewGenerationHandler(generationService, fulfillmentService, appLogger),
		Health:     handler.NewHealthHandler(dbManager),
	}, tokens)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting webhooks before draining generations they may dispatch
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	if err := runner.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Generations still running at shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
	return nil
}
