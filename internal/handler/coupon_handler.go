package handler

import (
	"net/http"

	"shopkart/internal/model"
	"shopkart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CouponHandler serves discount code endpoints.
type CouponHandler struct {
	coupons service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(coupons service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		coupons: coupons,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// Create handles POST /coupon.
func (h *CouponHandler) Create(c *gin.Context) {
	var req model.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	coupon, err := h.coupons.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"coupon":  coupon,
	})
}

// List handles GET /coupons.
func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.coupons.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"coupons": coupons,
	})
}

// Deactivate handles PUT /coupon/:id/deactivate.
func (h *CouponHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	coupon, err := h.coupons.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"coupon":  coupon,
	})
}

// Delete handles DELETE /coupon/:id.
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.coupons.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Coupon deleted",
	})
}
