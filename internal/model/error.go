package model

import "net/http"

// Standard error codes for API responses
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeExternal        = "EXTERNAL_SERVICE"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure carrying the HTTP status it maps to.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, Status: status}
}

// Validation builds a 400 error for missing or malformed input.
func Validation(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// NotFound builds a 404 error.
func NotFound(message string) *DomainError {
	return NewDomainError(ErrCodeNotFound, message, http.StatusNotFound)
}

// External builds a 502 error for a failed mail, payment or storage call.
func External(message string) *DomainError {
	return NewDomainError(ErrCodeExternal, message, http.StatusBadGateway)
}

// Common domain errors
var (
	ErrNotLoggedIn        = NewDomainError(ErrCodeUnauthenticated, "User not logged in", http.StatusUnauthorized)
	ErrTokenInvalid       = NewDomainError(ErrCodeUnauthenticated, "Token invalid or expired", http.StatusUnauthorized)
	ErrIncorrectPassword  = NewDomainError(ErrCodeUnauthenticated, "Incorrect password", http.StatusUnauthorized)
	ErrRoleForbidden      = NewDomainError(ErrCodeForbidden, "Not allowed to access this resource", http.StatusForbidden)
	ErrUserNotFound       = NotFound("User not found")
	ErrUserExists         = NewDomainError(ErrCodeConflict, "User already registered", http.StatusConflict)
	ErrCategoryNotFound   = NotFound("Category not found")
	ErrProductNotFound    = NotFound("Product not found")
	ErrOutOfStock         = Validation("Product out of stock")
	ErrCouponNotFound     = NotFound("Coupon not found")
	ErrCouponInvalid      = Validation("Coupon invalid")
	ErrOrderNotFound      = NotFound("Order not found")
	ErrInvalidTransition  = Validation("Invalid order status transition")
	ErrOrderNotCancelable = Validation("Delivered orders cannot be cancelled")
	ErrResetTokenInvalid  = Validation("Password reset token is invalid or expired")
)
