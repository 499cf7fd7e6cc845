package handler

import (
	"errors"
	"net/http"

	"shopkart/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// contextUserKey is where the auth middleware stores the authenticated user.
const contextUserKey = "user"

// respondError maps a DomainError to its HTTP status and message. Anything
// else is logged and reported as a generic 500.
func respondError(c *gin.Context, logger zerolog.Logger, err error) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.Status, gin.H{
			"success": false,
			"message": domainErr.Message,
		})
		return
	}

	logger.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Msg("unhandled error")

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}

// respondBindError reports a request binding failure as a 400.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": err.Error(),
	})
}

// currentUser returns the authenticated user placed by the auth middleware.
func currentUser(c *gin.Context) *model.User {
	user, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

// parseIDParam parses the :id path parameter as an ObjectID, writing a 400
// on failure.
func parseIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid id",
		})
		return primitive.NilObjectID, false
	}
	return id, true
}
