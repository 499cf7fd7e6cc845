package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusOrdered   OrderStatus = "ordered"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentMethod is the instrument used to pay for an order.
type PaymentMethod string

const (
	MethodCard       PaymentMethod = "card"
	MethodUPI        PaymentMethod = "upi"
	MethodNetbanking PaymentMethod = "netbanking"
	MethodWallet     PaymentMethod = "wallet"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCard, MethodUPI, MethodNetbanking, MethodWallet:
		return true
	}
	return false
}

// OrderItem is a product reference plus the quantity ordered.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// OrderAmounts is the money breakdown computed at checkout.
type OrderAmounts struct {
	OrderAmount     int `bson:"orderAmount" json:"orderAmount"`
	ShippingCharges int `bson:"shippingCharges" json:"shippingCharges"`
	Discount        int `bson:"discount" json:"discount"`
	Tax             int `bson:"tax" json:"tax"`
	TotalAmount     int `bson:"totalAmount" json:"totalAmount"`
}

// Address is the shipping destination.
type Address struct {
	HouseNo    string `bson:"houseNo" json:"houseNo" binding:"required"`
	Area       string `bson:"area" json:"area" binding:"required,max=100"`
	PostalCode string `bson:"postalCode" json:"postalCode" binding:"required"`
	City       string `bson:"city" json:"city" binding:"required"`
	State      string `bson:"state" json:"state" binding:"required"`
	Country    string `bson:"country" json:"country" binding:"required"`
}

// ShippingInfo couples the address with a contact phone number.
type ShippingInfo struct {
	Address Address `bson:"address" json:"address" binding:"required"`
	Phone   string  `bson:"phone" json:"phone" binding:"required"`
}

// PaymentInfo records the captured gateway transaction for an order.
type PaymentInfo struct {
	TransactionID string        `bson:"transactionId" json:"transactionId"`
	AmountPaid    int           `bson:"amountPaid" json:"amountPaid"`
	Method        PaymentMethod `bson:"method" json:"method"`
	Refunded      bool          `bson:"refunded" json:"refunded"`
	RefundID      string        `bson:"refundId,omitempty" json:"refundId,omitempty"`
}

// Order is created once per successful payment capture. Only status, refund
// and shipping contact fields mutate afterwards.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items             []OrderItem        `bson:"orderItems" json:"orderItems"`
	Amounts           OrderAmounts       `bson:"orderInfo" json:"orderInfo"`
	Shipping          ShippingInfo       `bson:"shippingInfo" json:"shippingInfo"`
	UserID            primitive.ObjectID `bson:"user" json:"user"`
	Status            OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	EstimatedDelivery time.Time          `bson:"estimatedDeliveryDate" json:"estimatedDeliveryDate"`
	Payment           PaymentInfo        `bson:"paymentInfo" json:"paymentInfo"`
	ShippedAt         *time.Time         `bson:"shippedOn,omitempty" json:"shippedOn,omitempty"`
	DeliveredAt       *time.Time         `bson:"deliveredOn,omitempty" json:"deliveredOn,omitempty"`
	CancelledAt       *time.Time         `bson:"cancelledOn,omitempty" json:"cancelledOn,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItemRequest is a single line item in a checkout or order request.
type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PaymentOrderRequest is the payload for POST /order/payment.
type PaymentOrderRequest struct {
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode string             `json:"couponCode"`
}

// PaymentOrderResponse returns the gateway intent the client must confirm.
type PaymentOrderResponse struct {
	PaymentID string `json:"paymentId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// PlaceOrderRequest is the payload for POST /order, sent after the client
// confirms the payment.
type PlaceOrderRequest struct {
	PaymentID string             `json:"paymentId" binding:"required"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Method    PaymentMethod      `json:"method" binding:"required"`
	Shipping  ShippingInfo       `json:"shippingInfo" binding:"required"`
	Tax       int                `json:"tax"`
	Shipment  int                `json:"shippingCharges"`
}

// UpdateOrderStatusRequest is the payload for PUT /admin/order/:id.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
