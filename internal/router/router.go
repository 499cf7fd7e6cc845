package router

import (
	"net/http"

	"shopkart/internal/auth"
	"shopkart/internal/handler"
	"shopkart/internal/middleware"
	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// New creates the gin engine with all routes and middleware configured.
// All API routes live under /api/v1.
func New(
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	couponHandler *handler.CouponHandler,
	orderHandler *handler.OrderHandler,
	tokens *auth.TokenManager,
	users repository.UserRepository,
	cookieName string,
	logger zerolog.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.CORS(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := engine.Group("/api/v1")

	// Public routes.
	api.POST("/signup", userHandler.Signup)
	api.POST("/login", userHandler.Login)
	api.GET("/logout", userHandler.Logout)
	api.POST("/password/forgot", userHandler.ForgotPassword)
	api.PUT("/password/reset/:token", userHandler.ResetPassword)
	api.GET("/categories", categoryHandler.List)
	api.GET("/category/:id", categoryHandler.Get)
	api.GET("/products", productHandler.List)
	api.GET("/product/:id", productHandler.Get)

	// Routes for any logged-in user.
	authed := api.Group("", middleware.Authenticate(tokens, users, cookieName, logger))
	authed.PUT("/password/change", userHandler.ChangePassword)
	authed.GET("/profile", userHandler.Profile)
	authed.PUT("/profile", userHandler.UpdateProfile)
	authed.PUT("/product/:id/review", productHandler.Review)
	authed.POST("/order/payment", orderHandler.CreatePaymentOrder)
	authed.POST("/order", orderHandler.PlaceOrder)
	authed.GET("/orders", orderHandler.ListMine)
	authed.GET("/order/:id", orderHandler.Get)
	authed.PUT("/order/:id/cancel", orderHandler.Cancel)

	// Catalogue management for managers and admins.
	managed := authed.Group("", middleware.RequireRole(model.RoleManager, model.RoleAdmin))
	managed.POST("/category", categoryHandler.Create)
	managed.PUT("/category/:id", categoryHandler.Update)
	managed.DELETE("/category/:id", categoryHandler.Delete)
	managed.POST("/product", productHandler.Create)
	managed.PUT("/product/:id", productHandler.Update)
	managed.DELETE("/product/:id", productHandler.Delete)
	managed.POST("/coupon", couponHandler.Create)
	managed.GET("/coupons", couponHandler.List)
	managed.PUT("/coupon/:id/deactivate", couponHandler.Deactivate)
	managed.DELETE("/coupon/:id", couponHandler.Delete)

	manager := authed.Group("/manager", middleware.RequireRole(model.RoleManager, model.RoleAdmin))
	manager.GET("/users", userHandler.ManagerListUsers)

	// Admin-only routes.
	admin := authed.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", userHandler.AdminListUsers)
	admin.GET("/user/:id", userHandler.AdminGetUser)
	admin.PUT("/user/:id", userHandler.AdminUpdateUser)
	admin.DELETE("/user/:id", userHandler.AdminDeleteUser)
	admin.GET("/orders", orderHandler.AdminList)
	admin.PUT("/order/:id", orderHandler.AdminUpdateStatus)
	admin.DELETE("/order/:id", orderHandler.AdminDelete)

	return engine
}
