package middleware

import (
	"net/http"
	"strings"
	"time"

	"shopkart/internal/auth"
	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// contextUserKey is where Authenticate stores the resolved user.
const contextUserKey = "user"

// Authenticate resolves the auth token from the session cookie or the
// Authorization header and loads the account it names. Requests without a
// valid token get a 401.
func Authenticate(tokens *auth.TokenManager, users repository.UserRepository, cookieName string, logger zerolog.Logger) gin.HandlerFunc {
	logger = logger.With().Str("middleware", "auth").Logger()

	return func(c *gin.Context) {
		tokenStr, ok := extractToken(c, cookieName)
		if !ok {
			abortUnauthenticated(c, model.ErrNotLoggedIn.Message)
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			logger.Debug().Err(err).Msg("token verification failed")
			abortUnauthenticated(c, model.ErrTokenInvalid.Message)
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abortUnauthenticated(c, model.ErrTokenInvalid.Message)
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			abortUnauthenticated(c, model.ErrTokenInvalid.Message)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Runs after
// Authenticate.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(contextUserKey)
		if !ok {
			abortUnauthenticated(c, model.ErrNotLoggedIn.Message)
			return
		}

		user := value.(*model.User)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": model.ErrRoleForbidden.Message,
		})
	}
}

// RequestLogger logs each request with timing information.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery converts panics into a 500 response.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// CORS adds CORS headers and answers preflight requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, bool) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, true
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), true
	}

	return "", false
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
