package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopkart/internal/auth"
	"shopkart/internal/config"
	"shopkart/internal/database"
	"shopkart/internal/handler"
	"shopkart/internal/mail"
	"shopkart/internal/payment"
	"shopkart/internal/repository"
	"shopkart/internal/router"
	"shopkart/internal/service"
	"shopkart/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopkart API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := database.Connect(ctx, cfg.Mongo, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from database")
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db, logger)
	categoryRepo := repository.NewCategoryRepository(db, logger)
	productRepo := repository.NewProductRepository(db, logger)
	couponRepo := repository.NewCouponRepository(db, logger)
	orderRepo := repository.NewOrderRepository(db, logger)

	// External services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	mailer := mail.NewSMTPMailer(cfg.SMTP, logger)
	gateway := payment.NewStripeGateway(cfg.Payment.SecretKey, logger)

	store, err := storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise object storage: %w", err)
	}

	// Services
	userService := service.NewUserService(userRepo, tokens, mailer, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	productService := service.NewProductService(productRepo, store, cfg.S3.Prefix, logger)
	couponService := service.NewCouponService(couponRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, couponRepo, gateway, cfg.Payment.Currency, logger)

	// HTTP handlers
	userHandler := handler.NewUserHandler(userService, cfg.Auth.CookieName, cfg.Auth.TokenExpiry, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	couponHandler := handler.NewCouponHandler(couponService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	engine := router.New(
		userHandler,
		categoryHandler,
		productHandler,
		couponHandler,
		orderHandler,
		tokens,
		userRepo,
		cfg.Auth.CookieName,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logger.Info().Msg("server stopped")
	return nil
}
