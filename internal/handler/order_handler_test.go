package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopkart/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newOrderTestRouter(svc *MockOrderService, actor *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderHandler(svc, zerolog.Nop())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", actor)
		c.Next()
	})
	router.POST("/order/payment", h.CreatePaymentOrder)
	router.POST("/order", h.PlaceOrder)
	router.GET("/orders", h.ListMine)
	router.GET("/order/:id", h.Get)
	router.PUT("/order/:id/cancel", h.Cancel)
	router.PUT("/admin/order/:id", h.AdminUpdateStatus)
	return router
}

func TestOrderHandler_CreatePaymentOrder(t *testing.T) {
	actor := &model.User{ID: primitive.NewObjectID(), Role: model.RoleUser}

	mockSvc := new(MockOrderService)
	mockSvc.On("CreatePaymentOrder", mock.Anything, actor, mock.AnythingOfType("*model.PaymentOrderRequest")).
		Return(&model.PaymentOrderResponse{PaymentID: "pi_123", Amount: 18000, Currency: "inr"}, nil)

	router := newOrderTestRouter(mockSvc, actor)

	body, _ := json.Marshal(map[string]any{
		"items":      []map[string]any{{"productId": primitive.NewObjectID().Hex(), "quantity": 2}},
		"couponCode": "SAVE10",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pi_123")
	mockSvc.AssertExpectations(t)
}

func TestOrderHandler_CreatePaymentOrder_EmptyBasket(t *testing.T) {
	actor := &model.User{ID: primitive.NewObjectID(), Role: model.RoleUser}
	mockSvc := new(MockOrderService)
	router := newOrderTestRouter(mockSvc, actor)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/payment", bytes.NewReader([]byte(`{"items":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "CreatePaymentOrder")
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	actor := &model.User{ID: primitive.NewObjectID(), Role: model.RoleUser}
	orderID := primitive.NewObjectID()

	mockSvc := new(MockOrderService)
	mockSvc.On("PlaceOrder", mock.Anything, actor, mock.AnythingOfType("*model.PlaceOrderRequest")).
		Return(&model.Order{ID: orderID, Status: model.StatusOrdered}, nil)

	router := newOrderTestRouter(mockSvc, actor)

	body, _ := json.Marshal(map[string]any{
		"paymentId": "pi_123",
		"items":     []map[string]any{{"productId": primitive.NewObjectID().Hex(), "quantity": 1}},
		"method":    "card",
		"shippingInfo": map[string]any{
			"phone": "9876543210",
			"address": map[string]any{
				"houseNo":    "12",
				"area":       "MG Road",
				"postalCode": "560001",
				"city":       "Bengaluru",
				"state":      "Karnataka",
				"country":    "India",
			},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), orderID.Hex())
	mockSvc.AssertExpectations(t)
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	actor := &model.User{ID: primitive.NewObjectID(), Role: model.RoleUser}
	orderID := primitive.NewObjectID()

	mockSvc := new(MockOrderService)
	mockSvc.On("Get", mock.Anything, actor, orderID).Return(nil, model.ErrOrderNotFound)

	router := newOrderTestRouter(mockSvc, actor)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/order/"+orderID.Hex(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found")
}

func TestOrderHandler_Get_InvalidID(t *testing.T) {
	actor := &model.User{ID: primitive.NewObjectID(), Role: model.RoleUser}
	mockSvc := new(MockOrderService)
	router := newOrderTestRouter(mockSvc, actor)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/order/not-an-id", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "Get")
}

func TestOrderHandler_Cancel(t *testing.T) {
	actor := &model.User{ID: primitive.NewObjectID(), Role: model.RoleUser}
	orderID := primitive.NewObjectID()

	mockSvc := new(MockOrderService)
	mockSvc.On("Cancel", mock.Anything, actor, orderID).
		Return(&model.Order{ID: orderID, Status: model.StatusCancelled}, nil)

	router := newOrderTestRouter(mockSvc, actor)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/order/"+orderID.Hex()+"/cancel", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(model.StatusCancelled))
	mockSvc.AssertExpectations(t)
}

func TestOrderHandler_AdminUpdateStatus(t *testing.T) {
	admin := &model.User{ID: primitive.NewObjectID(), Role: model.RoleAdmin}
	orderID := primitive.NewObjectID()

	t.Run("ship", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		mockSvc.On("UpdateStatus", mock.Anything, orderID, model.StatusShipped).
			Return(&model.Order{ID: orderID, Status: model.StatusShipped}, nil)

		router := newOrderTestRouter(mockSvc, admin)

		body, _ := json.Marshal(map[string]string{"status": "shipped"})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/admin/order/"+orderID.Hex(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("cancel routes through refund flow", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		mockSvc.On("Cancel", mock.Anything, admin, orderID).
			Return(&model.Order{ID: orderID, Status: model.StatusCancelled}, nil)

		router := newOrderTestRouter(mockSvc, admin)

		body, _ := json.Marshal(map[string]string{"status": "cancelled"})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/admin/order/"+orderID.Hex(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
		mockSvc.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("invalid transition surfaces as 400", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		mockSvc.On("UpdateStatus", mock.Anything, orderID, model.StatusDelivered).
			Return(nil, model.ErrInvalidTransition)

		router := newOrderTestRouter(mockSvc, admin)

		body, _ := json.Marshal(map[string]string{"status": "delivered"})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/admin/order/"+orderID.Hex(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
