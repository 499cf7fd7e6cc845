package database

import (
	"context"
	"fmt"
	"time"

	"shopkart/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used across the repositories.
const (
	CollUsers      = "users"
	CollCategories = "categories"
	CollProducts   = "products"
	CollCoupons    = "coupons"
	CollOrders     = "orders"
)

// Connect opens a client against the configured deployment and verifies it
// with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig, logger zerolog.Logger) (*mongo.Client, error) {
	timeout := time.Duration(cfg.Timeout) * time.Second
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info().
		Str("database", cfg.Database).
		Msg("connecting to mongodb")

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info().Msg("mongodb connection established")

	return client, nil
}

// EnsureIndexes creates the unique indexes the data model relies on:
// user email and phone, category name, coupon code.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		CollUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
		},
		CollCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		CollCoupons: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		CollOrders: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}

	return nil
}
