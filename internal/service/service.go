package service

import (
	"context"
	"io"
	"net/url"

	"shopkart/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService defines account, credential and profile operations.
type UserService interface {
	// Signup registers a new user and returns it with a fresh auth token.
	Signup(ctx context.Context, req *model.SignupRequest) (*model.User, string, error)

	// Login authenticates an email-or-phone identifier and returns the user
	// with a fresh auth token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error)

	// ForgotPassword stores a hashed reset token on the account and emails
	// the reset link. A mail failure rolls the token fields back.
	ForgotPassword(ctx context.Context, email, resetURLBase string) error

	// ResetPassword consumes a reset token, sets the new password and
	// returns the user with a fresh auth token.
	ResetPassword(ctx context.Context, token string, req *model.ResetPasswordRequest) (*model.User, string, error)

	// ChangePassword verifies the old password and replaces it.
	ChangePassword(ctx context.Context, user *model.User, req *model.ChangePasswordRequest) error

	// UpdateProfile applies name/phone changes to the caller's account.
	UpdateProfile(ctx context.Context, user *model.User, req *model.UpdateProfileRequest) (*model.User, error)

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, id primitive.ObjectID) (*model.User, error)

	// ListUsers retrieves all users, optionally restricted to a role.
	ListUsers(ctx context.Context, role model.Role) ([]model.User, error)

	// AdminUpdateUser applies an admin edit to any account.
	AdminUpdateUser(ctx context.Context, id primitive.ObjectID, req *model.AdminUpdateUserRequest) (*model.User, error)

	// DeleteUser removes an account.
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// CategoryService defines category management operations.
type CategoryService interface {
	Create(ctx context.Context, actor *model.User, name string) (*model.Category, error)
	Update(ctx context.Context, actor *model.User, id primitive.ObjectID, name string) (*model.Category, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PhotoUpload is a parsed multipart image ready for object storage.
type PhotoUpload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// ProductForm carries the scalar fields of a product create/update.
// A nil Stock means the field was absent from the form.
type ProductForm struct {
	Name        string
	Price       int
	Description string
	Brand       string
	Stock       *int
	CategoryID  string
}

// ProductService defines catalogue operations.
type ProductService interface {
	// Create uploads the photos to object storage and stores the product.
	Create(ctx context.Context, actor *model.User, form ProductForm, photos []PhotoUpload) (*model.Product, error)

	// Update applies field changes; replacement photos delete the old ones
	// from object storage first.
	Update(ctx context.Context, actor *model.User, id primitive.ObjectID, form ProductForm, photos []PhotoUpload) (*model.Product, error)

	// Get retrieves a product by id.
	Get(ctx context.Context, id primitive.ObjectID) (*model.Product, error)

	// List retrieves products for the given request query parameters,
	// applying search, pagination and the pass-through filter.
	List(ctx context.Context, params url.Values) ([]model.Product, error)

	// Delete removes the product and its stored photos.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Review adds or replaces the caller's single review and recomputes the
	// aggregate rating.
	Review(ctx context.Context, actor *model.User, id primitive.ObjectID, req *model.ReviewRequest) (*model.Product, error)
}

// CouponService defines discount code operations.
type CouponService interface {
	Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OrderService defines the order/payment lifecycle.
type OrderService interface {
	// CreatePaymentOrder prices the basket, burns the coupon if one is
	// supplied, and registers a payment intent with the gateway.
	CreatePaymentOrder(ctx context.Context, user *model.User, req *model.PaymentOrderRequest) (*model.PaymentOrderResponse, error)

	// PlaceOrder captures the confirmed payment, persists the order, and
	// adjusts inventory per item. The steps are independent calls with no
	// shared transaction and no idempotency guard.
	PlaceOrder(ctx context.Context, user *model.User, req *model.PlaceOrderRequest) (*model.Order, error)

	// Get retrieves an order, enforcing ownership for non-admin callers.
	Get(ctx context.Context, actor *model.User, id primitive.ObjectID) (*model.Order, error)

	// ListByUser retrieves the caller's orders.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error)

	// ListAll retrieves every order.
	ListAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus advances the order along ordered -> shipped -> delivered.
	// A transition to cancelled is routed through Cancel.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, next model.OrderStatus) (*model.Order, error)

	// Cancel refunds the payment, restores inventory, and marks the order
	// cancelled. Delivered orders cannot be cancelled.
	Cancel(ctx context.Context, actor *model.User, id primitive.ObjectID) (*model.Order, error)

	// Delete hard-deletes an order (explicit admin action only).
	Delete(ctx context.Context, id primitive.ObjectID) error
}
