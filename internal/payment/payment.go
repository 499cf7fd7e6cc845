package payment

import "context"

// Intent is a gateway payment in its authorise/capture lifecycle.
type Intent struct {
	ID       string
	Amount   int64 // smallest currency unit
	Currency string
	Status   string
}

// Refund is the result of reversing a captured payment.
type Refund struct {
	ID     string
	Amount int64
	Status string
}

// Gateway is the payment provider surface the order flow depends on.
// Implementations delegate entirely to the provider SDK; there is no retry
// or idempotency handling at this layer.
type Gateway interface {
	// CreateIntent registers a payment for the given amount, to be captured
	// after client confirmation.
	CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*Intent, error)

	// Capture finalises a previously authorised payment.
	Capture(ctx context.Context, intentID string) (*Intent, error)

	// Refund reverses a captured payment in full.
	Refund(ctx context.Context, intentID string, amount int64) (*Refund, error)

	// FetchIntent retrieves the current state of a payment.
	FetchIntent(ctx context.Context, intentID string) (*Intent, error)
}
