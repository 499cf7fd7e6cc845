package service

import (
	"context"
	"time"

	"shopkart/internal/model"
	"shopkart/internal/payment"
	"shopkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const estimatedDeliveryDays = 7

// orderService implements OrderService.
//
// The order flow is a sequence of independent database and gateway calls:
// there is no shared transaction, no idempotency guard, and no compensation
// if a later step fails after an earlier one succeeded. Replaying a place-
// order request with the same payment id produces a duplicate order; two
// concurrent orders for the same product can race on the stock decrement.
// These are acknowledged limitations of the flow, not hidden invariants.
type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	coupons  repository.CouponRepository
	gateway  payment.Gateway
	currency string
	logger   zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	coupons repository.CouponRepository,
	gateway payment.Gateway,
	currency string,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders:   orders,
		products: products,
		coupons:  coupons,
		gateway:  gateway,
		currency: currency,
		logger:   logger.With().Str("service", "order").Logger(),
	}
}

// CreatePaymentOrder prices the basket, burns the coupon if one is supplied,
// and registers a payment intent with the gateway.
func (s *orderService) CreatePaymentOrder(ctx context.Context, user *model.User, req *model.PaymentOrderRequest) (*model.PaymentOrderResponse, error) {
	amount, err := s.priceBasket(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	if req.CouponCode != "" {
		coupon, err := s.coupons.GetActiveByCode(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		if coupon == nil {
			return nil, model.ErrCouponInvalid
		}

		amount = amount * (100 - coupon.Discount) / 100

		// A coupon is single-use: applying it at checkout burns it, even if
		// the payment is never confirmed.
		if _, err := s.coupons.Deactivate(ctx, coupon.ID); err != nil {
			return nil, err
		}
		s.logger.Info().Str("coupon", coupon.Code).Int("discount", coupon.Discount).Msg("coupon applied")
	}

	intent, err := s.gateway.CreateIntent(ctx, int64(amount)*100, s.currency, uuid.NewString())
	if err != nil {
		return nil, model.External("Failed to create payment order")
	}

	s.logger.Info().
		Str("user_id", user.ID.Hex()).
		Str("intent_id", intent.ID).
		Int64("amount", intent.Amount).
		Msg("payment order created")

	return &model.PaymentOrderResponse{
		PaymentID: intent.ID,
		Amount:    intent.Amount,
		Currency:  intent.Currency,
	}, nil
}

// PlaceOrder captures the confirmed payment, persists the order, then
// adjusts inventory for each item as an independent write.
func (s *orderService) PlaceOrder(ctx context.Context, user *model.User, req *model.PlaceOrderRequest) (*model.Order, error) {
	if !req.Method.Valid() {
		return nil, model.Validation("Unsupported payment method")
	}

	orderAmount, err := s.priceBasket(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// Step 1: capture the payment at the gateway.
	intent, err := s.gateway.Capture(ctx, req.PaymentID)
	if err != nil {
		return nil, model.External("Failed to capture payment")
	}

	totalAmount := int(intent.Amount / 100)
	discount := orderAmount + req.Shipment + req.Tax - totalAmount
	if discount < 0 {
		discount = 0
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		productID, _ := primitive.ObjectIDFromHex(item.ProductID)
		items[i] = model.OrderItem{ProductID: productID, Quantity: item.Quantity}
	}

	order := &model.Order{
		Items: items,
		Amounts: model.OrderAmounts{
			OrderAmount:     orderAmount,
			ShippingCharges: req.Shipment,
			Discount:        discount,
			Tax:             req.Tax,
			TotalAmount:     totalAmount,
		},
		Shipping:          req.Shipping,
		UserID:            user.ID,
		Status:            model.StatusOrdered,
		EstimatedDelivery: time.Now().AddDate(0, 0, estimatedDeliveryDays),
		Payment: model.PaymentInfo{
			TransactionID: intent.ID,
			AmountPaid:    totalAmount,
			Method:        req.Method,
		},
	}

	// Step 2: persist the order.
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	// Step 3: adjust inventory item by item. Each write stands alone; a
	// failure here leaves the order in place and the remaining items
	// untouched.
	for _, item := range items {
		if err := s.products.AdjustInventory(ctx, item.ProductID, -item.Quantity, item.Quantity); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", order.ID.Hex()).
				Str("product_id", item.ProductID.Hex()).
				Msg("failed to adjust inventory for ordered item")
		}
	}

	s.logger.Info().
		Str("order_id", order.ID.Hex()).
		Str("transaction_id", intent.ID).
		Int("item_count", len(items)).
		Msg("order placed")

	return order, nil
}

// Get retrieves an order, enforcing ownership for non-admin callers.
func (s *orderService) Get(ctx context.Context, actor *model.User, id primitive.ObjectID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if actor.Role != model.RoleAdmin && order.UserID != actor.ID {
		return nil, model.ErrRoleForbidden
	}
	return order, nil
}

// ListByUser retrieves the caller's orders.
func (s *orderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAll retrieves every order.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.orders.List(ctx)
}

// UpdateStatus advances the order along ordered -> shipped -> delivered.
// Cancellation is handled by Cancel, which also refunds.
func (s *orderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, next model.OrderStatus) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	now := time.Now()

	switch next {
	case model.StatusShipped:
		if order.Status != model.StatusOrdered {
			return nil, model.ErrInvalidTransition
		}
		order.Status = model.StatusShipped
		order.ShippedAt = &now

	case model.StatusDelivered:
		if order.Status != model.StatusShipped {
			return nil, model.ErrInvalidTransition
		}
		order.Status = model.StatusDelivered
		order.DeliveredAt = &now

	default:
		return nil, model.ErrInvalidTransition
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.Hex()).
		Str("status", string(order.Status)).
		Msg("order status updated")

	return order, nil
}

// Cancel refunds the payment, restores inventory, and marks the order
// cancelled. Allowed from any non-delivered, non-cancelled status.
func (s *orderService) Cancel(ctx context.Context, actor *model.User, id primitive.ObjectID) (*model.Order, error) {
	order, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case model.StatusDelivered:
		return nil, model.ErrOrderNotCancelable
	case model.StatusCancelled:
		return nil, model.Validation("Order already cancelled")
	}

	refund, err := s.gateway.Refund(ctx, order.Payment.TransactionID, int64(order.Payment.AmountPaid)*100)
	if err != nil {
		return nil, model.External("Failed to refund payment")
	}

	order.Payment.Refunded = true
	order.Payment.RefundID = refund.ID

	// Reverse the inventory adjustments, again item by item.
	for _, item := range order.Items {
		if err := s.products.AdjustInventory(ctx, item.ProductID, item.Quantity, -item.Quantity); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", order.ID.Hex()).
				Str("product_id", item.ProductID.Hex()).
				Msg("failed to restore inventory for cancelled item")
		}
	}

	now := time.Now()
	order.Status = model.StatusCancelled
	order.CancelledAt = &now

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.Hex()).
		Str("refund_id", refund.ID).
		Msg("order cancelled and refunded")

	return order, nil
}

// Delete hard-deletes an order (explicit admin action only).
func (s *orderService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.orders.Delete(ctx, id)
}

// priceBasket sums price*quantity over the requested items, rejecting
// unknown products and items without stock.
func (s *orderService) priceBasket(ctx context.Context, items []model.OrderItemRequest) (int, error) {
	amount := 0
	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return 0, model.Validation("Invalid product id")
		}
		if item.Quantity < 1 {
			return 0, model.Validation("Quantity must be at least 1")
		}

		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return 0, err
		}
		if product == nil {
			return 0, model.ErrProductNotFound
		}
		if product.Stock < item.Quantity {
			return 0, model.ErrOutOfStock
		}

		amount += product.Price * item.Quantity
	}
	return amount, nil
}
