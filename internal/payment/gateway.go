package payment

import "context"

// CheckoutInput describes a hosted checkout session request.
type CheckoutInput struct {
	ProductName string
	Amount      float64
	SuccessURL  string
	CancelURL   string
}

// Gateway is the narrow port to the external payment processor. The processor
// moves the money; this service only records the outcome afterwards.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount float64) (clientSecret string, err error)
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (url string, err error)
}
