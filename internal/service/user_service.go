package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopkart/internal/auth"
	"shopkart/internal/mail"
	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const resetTokenTTL = 30 * time.Minute

// userService implements UserService.
type userService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	mailer mail.Mailer
	logger zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	users repository.UserRepository,
	tokens *auth.TokenManager,
	mailer mail.Mailer,
	logger zerolog.Logger,
) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// Signup registers a new user and returns it with a fresh auth token.
func (s *userService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, string, error) {
	if req.Password != req.ConfirmPassword {
		return nil, "", model.Validation("Password and confirmPassword don't match")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		s.logger.Warn().Str("email", email).Msg("signup for registered email")
		return nil, "", model.ErrUserExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FirstName: strings.ToLower(strings.TrimSpace(req.FirstName)),
		LastName:  strings.ToLower(strings.TrimSpace(req.LastName)),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Password:  hash,
		Role:      model.RoleUser,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("user signed up")
	return user, token, nil
}

// Login authenticates an email-or-phone identifier.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	login := strings.TrimSpace(req.Login)

	user, err := s.users.GetByEmail(ctx, strings.ToLower(login))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		user, err = s.users.GetByPhone(ctx, login)
		if err != nil {
			return nil, "", err
		}
	}
	if user == nil {
		s.logger.Debug().Str("login", login).Msg("login for unknown identifier")
		return nil, "", model.ErrUserNotFound
	}

	if !auth.ComparePassword(user.Password, req.Password) {
		s.logger.Warn().Str("user_id", user.ID.Hex()).Msg("incorrect password")
		return nil, "", model.ErrIncorrectPassword
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("user logged in")
	return user, token, nil
}

// ForgotPassword stores a hashed reset token and emails the reset link.
// A mail failure rolls the token fields back so a stale token never lingers.
func (s *userService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	plain, hashed, err := auth.NewResetToken()
	if err != nil {
		return err
	}

	user.ForgotPasswordToken = hashed
	user.ForgotPasswordExpiry = time.Now().Add(resetTokenTTL)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", strings.TrimRight(resetURLBase, "/"), plain)
	body := fmt.Sprintf("Click on this link to reset your password: %s", resetURL)

	if err := s.mailer.Send(ctx, user.Email, "Password reset email", body); err != nil {
		user.ForgotPasswordToken = ""
		user.ForgotPasswordExpiry = time.Time{}
		if rbErr := s.users.Update(ctx, user); rbErr != nil {
			s.logger.Error().Err(rbErr).Str("user_id", user.ID.Hex()).Msg("failed to roll back reset token")
		}
		return model.External("Unable to send password reset email")
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("password reset email sent")
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *userService) ResetPassword(ctx context.Context, token string, req *model.ResetPasswordRequest) (*model.User, string, error) {
	if req.Password != req.ConfirmPassword {
		return nil, "", model.Validation("Password and confirmPassword don't match")
	}

	user, err := s.users.GetByResetToken(ctx, auth.HashResetToken(token), time.Now())
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", model.ErrResetTokenInvalid
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user.Password = hash
	user.ForgotPasswordToken = ""
	user.ForgotPasswordExpiry = time.Time{}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", err
	}

	authToken, err := s.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("password reset")
	return user, authToken, nil
}

// ChangePassword verifies the old password and replaces it.
func (s *userService) ChangePassword(ctx context.Context, user *model.User, req *model.ChangePasswordRequest) error {
	if !auth.ComparePassword(user.Password, req.OldPassword) {
		return model.ErrIncorrectPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("password changed")
	return nil
}

// UpdateProfile applies name/phone changes to the caller's account.
func (s *userService) UpdateProfile(ctx context.Context, user *model.User, req *model.UpdateProfileRequest) (*model.User, error) {
	if req.FirstName != "" {
		user.FirstName = strings.ToLower(strings.TrimSpace(req.FirstName))
	}
	if req.LastName != "" {
		user.LastName = strings.ToLower(strings.TrimSpace(req.LastName))
	}
	if req.Phone != "" {
		user.Phone = strings.TrimSpace(req.Phone)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by id.
func (s *userService) GetUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// ListUsers retrieves all users, optionally restricted to a role.
func (s *userService) ListUsers(ctx context.Context, role model.Role) ([]model.User, error) {
	return s.users.List(ctx, role)
}

// AdminUpdateUser applies an admin edit to any account.
func (s *userService) AdminUpdateUser(ctx context.Context, id primitive.ObjectID, req *model.AdminUpdateUserRequest) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = strings.ToLower(strings.TrimSpace(req.FirstName))
	}
	if req.LastName != "" {
		user.LastName = strings.ToLower(strings.TrimSpace(req.LastName))
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Role != "" {
		if !req.Role.Valid() {
			return nil, model.Validation("Unsupported auth role")
		}
		user.Role = req.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("user updated by admin")
	return user, nil
}

// DeleteUser removes an account.
func (s *userService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return s.users.Delete(ctx, id)
}
