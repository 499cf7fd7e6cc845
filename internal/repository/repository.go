package repository

import (
	"context"
	"time"

	"shopkart/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data access operations.
// Lookups return (nil, nil) when no document matches.
type UserRepository interface {
	// Insert stores a new user and fills in its generated id.
	Insert(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by its document id.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)

	// GetByEmail retrieves a user by email, including the password hash.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByPhone retrieves a user by phone, including the password hash.
	GetByPhone(ctx context.Context, phone string) (*model.User, error)

	// GetByResetToken retrieves a user whose hashed reset token matches and
	// whose reset expiry is after now.
	GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*model.User, error)

	// Update replaces the stored document with the given user.
	Update(ctx context.Context, user *model.User) error

	// List retrieves all users, optionally restricted to a role.
	List(ctx context.Context, role model.Role) ([]model.User, error)

	// Delete removes a user document.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	Insert(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	Insert(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)

	// Find retrieves products matching a built query filter.
	Find(ctx context.Context, filter Filter) ([]model.Product, error)

	// Update replaces the stored document with the given product.
	Update(ctx context.Context, product *model.Product) error

	// AdjustInventory applies stock and sold-units deltas to a product as a
	// single, independent write. There is no coordination across products:
	// concurrent orders can race on the same document.
	AdjustInventory(ctx context.Context, id primitive.ObjectID, stockDelta, soldDelta int) error

	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	Insert(ctx context.Context, coupon *model.Coupon) error

	// GetActiveByCode retrieves an active coupon by its code.
	GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error)

	// Deactivate marks a coupon inactive, returning the updated document.
	Deactivate(ctx context.Context, id primitive.ObjectID) (*model.Coupon, error)

	List(ctx context.Context) ([]model.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	Insert(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
