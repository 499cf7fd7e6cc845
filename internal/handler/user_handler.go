package handler

import (
	"fmt"
	"net/http"
	"time"

	"shopkart/internal/model"
	"shopkart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler serves account, credential and profile endpoints.
type UserHandler struct {
	users      service.UserService
	cookieName string
	cookieTTL  time.Duration
	logger     zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService, cookieName string, cookieTTL time.Duration, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:      users,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		logger:     logger.With().Str("handler", "user").Logger(),
	}
}

// Signup handles POST /signup.
func (h *UserHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.users.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Login handles POST /login.
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Logout handles GET /logout. The token is stateless, so logout just clears
// the cookie; an already issued token stays valid until it expires.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout success",
	})
}

// ForgotPassword handles POST /password/forgot.
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.users.ForgotPassword(c.Request.Context(), req.Email, resetURLBase(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset email sent",
	})
}

// ResetPassword handles PUT /password/reset/:token.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.users.ResetPassword(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// ChangePassword handles PUT /password/change.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), currentUser(c), &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed",
	})
}

// Profile handles GET /profile.
func (h *UserHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    currentUser(c),
	})
}

// UpdateProfile handles PUT /profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// AdminListUsers handles GET /admin/users.
func (h *UserHandler) AdminListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context(), "")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}

// ManagerListUsers handles GET /manager/users. Managers only see accounts
// with the plain user role.
func (h *UserHandler) ManagerListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context(), model.RoleUser)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}

// AdminGetUser handles GET /admin/user/:id.
func (h *UserHandler) AdminGetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// AdminUpdateUser handles PUT /admin/user/:id.
func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req model.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.AdminUpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// AdminDeleteUser handles DELETE /admin/user/:id.
func (h *UserHandler) AdminDeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted",
	})
}

func (h *UserHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(h.cookieName, token, int(h.cookieTTL.Seconds()), "/", "", false, true)
}

// resetURLBase rebuilds the external base URL of the API from the incoming
// request, used to compose the password reset link.
func resetURLBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/v1", scheme, c.Request.Host)
}
