package handler

import (
	"net/http"

	"shopkart/internal/model"
	"shopkart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OrderHandler serves checkout and order lifecycle endpoints.
type OrderHandler struct {
	orders service.OrderService
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// CreatePaymentOrder handles POST /order/payment. It prices the basket and
// returns the gateway payment the client must confirm.
func (h *OrderHandler) CreatePaymentOrder(c *gin.Context) {
	var req model.PaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.orders.CreatePaymentOrder(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   resp,
	})
}

// PlaceOrder handles POST /order, sent after the client confirms the payment.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req model.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
	})
}

// ListMine handles GET /orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.orders.ListByUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// Get handles GET /order/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// Cancel handles PUT /order/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// AdminList handles GET /admin/orders.
func (h *OrderHandler) AdminList(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// AdminUpdateStatus handles PUT /admin/order/:id. A cancelled status routes
// through the cancel flow so the payment is refunded.
func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var (
		order *model.Order
		err   error
	)
	if req.Status == model.StatusCancelled {
		order, err = h.orders.Cancel(c.Request.Context(), currentUser(c), id)
	} else {
		order, err = h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// AdminDelete handles DELETE /admin/order/:id.
func (h *OrderHandler) AdminDelete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted",
	})
}
