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

// orderRepository implements the OrderRepository interface over a mongo collection.
type orderRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewOrderRepository creates a new mongo-backed order repository.
func NewOrderRepository(db *mongo.Database, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		coll:   db.Collection(database.CollOrders),
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func (r *orderRepository) Insert(ctx context.Context, order *model.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", order.UserID.Hex()).Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	var order model.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.Hex()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error) {
	return r.list(ctx, bson.M{"user": userID})
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *orderRepository) list(ctx context.Context, filter bson.M) ([]model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	order.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.Hex()).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.Hex()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
