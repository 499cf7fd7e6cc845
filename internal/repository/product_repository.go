package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopkart/internal/database"
	"shopkart/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productRepository implements the ProductRepository interface over a mongo collection.
type productRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewProductRepository creates a new mongo-backed product repository.
func NewProductRepository(db *mongo.Database, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		coll:   db.Collection(database.CollProducts),
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func (r *productRepository) Insert(ctx context.Context, product *model.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Photos == nil {
		product.Photos = []model.Photo{}
	}
	if product.Reviews == nil {
		product.Reviews = []model.Review{}
	}

	result, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var product model.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.Hex()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &product, nil
}

// Find retrieves products matching a built query filter.
func (r *productRepository) Find(ctx context.Context, filter Filter) ([]model.Product, error) {
	opts := options.Find().
		SetSkip(filter.Skip).
		SetLimit(filter.Limit).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter.Query, opts)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("skip", filter.Skip).
			Int64("limit", filter.Limit).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.Hex()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// AdjustInventory applies stock and sold-units deltas as a single write.
// Each product is adjusted independently; there is no transaction across an
// order's items.
func (r *productRepository) AdjustInventory(ctx context.Context, id primitive.ObjectID, stockDelta, soldDelta int) error {
	update := bson.M{
		"$inc": bson.M{"stock": stockDelta, "soldUnits": soldDelta},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", id.Hex()).
			Int("stock_delta", stockDelta).
			Int("sold_delta", soldDelta).
			Msg("failed to adjust inventory")
		return fmt.Errorf("failed to adjust inventory: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.Hex()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrProductNotFound
	}
	return nil
}
