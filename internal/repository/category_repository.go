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

// categoryRepository implements the CategoryRepository interface over a mongo collection.
type categoryRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewCategoryRepository creates a new mongo-backed category repository.
func NewCategoryRepository(db *mongo.Database, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		coll:   db.Collection(database.CollCategories),
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func (r *categoryRepository) Insert(ctx context.Context, category *model.Category) error {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, category)
	if err != nil {
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to insert category")
		return fmt.Errorf("failed to insert category: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = id
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	var category model.Category
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.Hex()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	category.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", category.ID.Hex()).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []model.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.Hex()).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}
