// Seeds an admin account into the configured database. Intended for first
// deployment; safe to re-run, it refuses to overwrite an existing account.
//
// Usage:
//
//	ADMIN_EMAIL=admin@example.com ADMIN_PASSWORD=changeme go run ./scripts/seed_admin
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"shopkart/internal/auth"
	"shopkart/internal/config"
	"shopkart/internal/database"
	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.Nop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.Mongo, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	users := repository.NewUserRepository(db, logger)

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("account %s already exists", email)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		FirstName: "admin",
		LastName:  "admin",
		Email:     email,
		Phone:     os.Getenv("ADMIN_PHONE"),
		Password:  hash,
		Role:      model.RoleAdmin,
	}
	if err := users.Insert(ctx, admin); err != nil {
		return err
	}

	fmt.Printf("Admin account created: %s (%s)\n", email, admin.ID.Hex())
	return nil
}
