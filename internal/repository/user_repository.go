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
)

// userRepository implements the UserRepository interface over a mongo collection.
type userRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewUserRepository creates a new mongo-backed user repository.
func NewUserRepository(db *mongo.Database, logger zerolog.Logger) UserRepository {
	return &userRepository{
		coll:   db.Collection(database.CollUsers),
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// Insert stores a new user and fills in its generated id.
func (r *userRepository) Insert(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		r.logger.Error().Err(err).Str("email", user.Email).Msg("failed to insert user")
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// GetByID retrieves a user by its document id.
func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail retrieves a user by email, including the password hash.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByPhone retrieves a user by phone, including the password hash.
func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

// GetByResetToken retrieves a user whose hashed reset token matches and is
// not yet expired.
func (r *userRepository) GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*model.User, error) {
	return r.findOne(ctx, bson.M{
		"forgotPasswordToken":  hashedToken,
		"forgotPasswordExpiry": bson.M{"$gt": now},
	})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// Update replaces the stored document with the given user.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to update user")
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// List retrieves all users, optionally restricted to a role.
func (r *userRepository) List(ctx context.Context, role model.Role) ([]model.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Delete removes a user document.
func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.Hex()).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
