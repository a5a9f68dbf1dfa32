package gatewaymock

import (
	"context"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/payment"
)

// Gateway is a function-field mock of payment.Gateway.
type Gateway struct {
	CreatePaymentIntentFn   func(ctx context.Context, amount float64) (string, error)
	CreateCheckoutSessionFn func(ctx context.Context, in payment.CheckoutInput) (string, error)
}

func (g *Gateway) CreatePaymentIntent(ctx context.Context, amount float64) (string, error) {
	if g.CreatePaymentIntentFn == nil {
		return "secret_test", nil
	}
	return g.CreatePaymentIntentFn(ctx, amount)
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, in payment.CheckoutInput) (string, error) {
	if g.CreateCheckoutSessionFn == nil {
		return "https://checkout.test/session", nil
	}
	return g.CreateCheckoutSessionFn(ctx, in)
}

// Confirmations is a function-field mock of payment.ConfirmationStore.
type Confirmations struct {
	FirstConfirmationFn func(ctx context.Context, applicationID, kind string) (bool, error)
}

func (c *Confirmations) FirstConfirmation(ctx context.Context, applicationID, kind string) (bool, error) {
	if c.FirstConfirmationFn == nil {
		return true, nil
	}
	return c.FirstConfirmationFn(ctx, applicationID, kind)
}
