package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the authorisation level attached to a user account.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Photo is an object-storage reference: the storage key and the public URL.
type Photo struct {
	ID  string `bson:"id" json:"id"`
	URL string `bson:"url" json:"url"`
}

// User represents a customer or staff account.
// The bcrypt hash and the password-reset fields are never serialised to JSON.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName            string             `bson:"firstName" json:"firstName"`
	LastName             string             `bson:"lastName" json:"lastName"`
	Email                string             `bson:"email" json:"email"`
	Phone                string             `bson:"phone" json:"phone"`
	Password             string             `bson:"password" json:"-"`
	Role                 Role               `bson:"role" json:"role"`
	Photo                *Photo             `bson:"photo,omitempty" json:"photo,omitempty"`
	ForgotPasswordToken  string             `bson:"forgotPasswordToken,omitempty" json:"-"`
	ForgotPasswordExpiry time.Time          `bson:"forgotPasswordExpiry,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AuditRecord captures which user performed a privileged mutation.
type AuditRecord struct {
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Role   Role               `bson:"role" json:"role"`
}

// SignupRequest is the payload for POST /signup.
type SignupRequest struct {
	FirstName       string `json:"firstname" binding:"required"`
	LastName        string `json:"lastname" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginRequest carries an email or phone identifier plus the password.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest is the payload for POST /password/forgot.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the payload for PUT /password/reset/:token.
type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ChangePasswordRequest is the payload for PUT /password/change.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdateProfileRequest is the payload for PUT /profile.
type UpdateProfileRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Phone     string `json:"phone"`
}

// AdminUpdateUserRequest is the payload for PUT /admin/user/:id.
type AdminUpdateUserRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}
