package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vendoreval/engine/internal/api"
	"github.com/vendoreval/engine/internal/api/handlers"
	"github.com/vendoreval/engine/internal/repository"
	"github.com/vendoreval/engine/internal/services"
	"github.com/vendoreval/engine/pkg/config"
	"github.com/vendoreval/engine/pkg/database"
	"github.com/vendoreval/engine/pkg/logger"
	"go.uber.org/zap"
)

// @title           Supplier Evaluation API
// @version         1.0
// @description     Administrative API for managing companies and risk-evaluation requests.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting supplier evaluation engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	policy, err := services.ParseRegistrationPolicy(cfg.RegistrationPolicy)
	if err != nil {
		log.Fatal("Invalid registration policy", zap.Error(err))
	}

	// Initialize services
	authSvc, err := services.NewAuthService(userRepo, services.AuthOptions{
		Secret:    []byte(cfg.JWTSecret),
		Algorithm: cfg.JWTAlgorithm,
		TokenTTL:  cfg.AccessTokenTTL,
		Policy:    policy,
	})
	if err != nil {
		log.Fatal("Failed to build auth service", zap.Error(err))
	}
	companySvc := services.NewCompanyService(companyRepo)
	requestSvc := services.NewRequestService(requestRepo, companyRepo)

	// Create router with dependencies
	router := api.NewRouter(api.Dependencies{
		Verifier:         authSvc,
		Users:            userRepo,
		AuthHandler:      handlers.NewAuthHandler(authSvc),
		CompaniesHandler: handlers.NewCompaniesHandler(companySvc),
		RequestsHandler:  handlers.NewRequestsHandler(requestSvc),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
