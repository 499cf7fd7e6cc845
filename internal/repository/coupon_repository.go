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

// couponRepository implements the CouponRepository interface over a mongo collection.
type couponRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewCouponRepository creates a new mongo-backed coupon repository.
func NewCouponRepository(db *mongo.Database, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		coll:   db.Collection(database.CollCoupons),
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

func (r *couponRepository) Insert(ctx context.Context, coupon *model.Coupon) error {
	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, coupon)
	if err != nil {
		r.logger.Error().Err(err).Str("code", coupon.Code).Msg("failed to insert coupon")
		return fmt.Errorf("failed to insert coupon: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = id
	}
	return nil
}

// GetActiveByCode retrieves an active coupon by its code.
func (r *couponRepository) GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.coll.FindOne(ctx, bson.M{"code": code, "isActive": true}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}
	return &coupon, nil
}

// Deactivate marks a coupon inactive, returning the updated document.
func (r *couponRepository) Deactivate(ctx context.Context, id primitive.ObjectID) (*model.Coupon, error) {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var coupon model.Coupon
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrCouponNotFound
		}
		r.logger.Error().Err(err).Str("coupon_id", id.Hex()).Msg("failed to deactivate coupon")
		return nil, fmt.Errorf("failed to deactivate coupon: %w", err)
	}
	return &coupon, nil
}

func (r *couponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list coupons")
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []model.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}
	return coupons, nil
}

func (r *couponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.Hex()).Msg("failed to delete coupon")
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}
