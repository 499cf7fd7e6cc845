package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/refund"
)

// stripeGateway implements Gateway against the Stripe PaymentIntents API.
type stripeGateway struct {
	logger zerolog.Logger
}

// NewStripeGateway configures the Stripe SDK with the given secret key and
// returns a gateway backed by it.
func NewStripeGateway(secretKey string, logger zerolog.Logger) Gateway {
	stripe.Key = secretKey
	return &stripeGateway{
		logger: logger.With().Str("component", "stripe-gateway").Logger(),
	}
}

// CreateIntent registers a manual-capture payment intent.
func (g *stripeGateway) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Metadata:      map[string]string{"receipt": receipt},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error().Err(err).Int64("amount", amount).Msg("failed to create payment intent")
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	g.logger.Info().
		Str("intent_id", pi.ID).
		Int64("amount", pi.Amount).
		Msg("payment intent created")

	return fromStripeIntent(pi), nil
}

// Capture finalises a previously authorised payment.
func (g *stripeGateway) Capture(ctx context.Context, intentID string) (*Intent, error) {
	params := &stripe.PaymentIntentCaptureParams{
		Params: stripe.Params{Context: ctx},
	}

	pi, err := paymentintent.Capture(intentID, params)
	if err != nil {
		g.logger.Error().Err(err).Str("intent_id", intentID).Msg("failed to capture payment")
		return nil, fmt.Errorf("failed to capture payment %s: %w", intentID, err)
	}

	g.logger.Info().Str("intent_id", pi.ID).Msg("payment captured")

	return fromStripeIntent(pi), nil
}

// Refund reverses a captured payment in full.
func (g *stripeGateway) Refund(ctx context.Context, intentID string, amount int64) (*Refund, error) {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(amount),
	}

	ref, err := refund.New(params)
	if err != nil {
		g.logger.Error().Err(err).Str("intent_id", intentID).Msg("failed to refund payment")
		return nil, fmt.Errorf("failed to refund payment %s: %w", intentID, err)
	}

	g.logger.Info().
		Str("intent_id", intentID).
		Str("refund_id", ref.ID).
		Int64("amount", ref.Amount).
		Msg("payment refunded")

	return &Refund{ID: ref.ID, Amount: ref.Amount, Status: string(ref.Status)}, nil
}

// FetchIntent retrieves the current state of a payment.
func (g *stripeGateway) FetchIntent(ctx context.Context, intentID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}

	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		g.logger.Error().Err(err).Str("intent_id", intentID).Msg("failed to fetch payment intent")
		return nil, fmt.Errorf("failed to fetch payment intent %s: %w", intentID, err)
	}

	return fromStripeIntent(pi), nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:       pi.ID,
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
		Status:   string(pi.Status),
	}
}
