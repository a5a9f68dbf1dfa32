package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/config"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/payment"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

// PaymentService drives the payment gateway for fee intents, disbursement
// checkouts and repayment checkouts. Gateway failures are logged in full and
// surface to clients only as an upstream-failure code.
type PaymentService struct {
	gateway payment.Gateway
	apps    *ApplicationService
	cfg     config.StripeConfig
	logger  *zap.Logger
}

// NewPaymentService constructs the service.
func NewPaymentService(gateway payment.Gateway, apps *ApplicationService, cfg config.StripeConfig, logger *zap.Logger) *PaymentService {
	return &PaymentService{gateway: gateway, apps: apps, cfg: cfg, logger: logger}
}

// CreateIntent creates a card payment intent and returns its client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", apperrors.NewValidationError("invalid amount provided", nil)
	}

	secret, err := s.gateway.CreatePaymentIntent(ctx, amount)
	if err != nil {
		s.logger.Error("payment intent creation failed", zap.Error(err))
		return "", apperrors.NewUpstreamFailure("payment gateway error", err)
	}
	return secret, nil
}

// DisbursementCheckout opens a hosted checkout for sending approved loan
// funds to the borrower.
func (s *PaymentService) DisbursementCheckout(ctx context.Context, applicationID string) (string, error) {
	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return "", err
	}
	if app.Status != domain.ApplicationStatusApproved {
		return "", apperrors.NewInvalidTransition("application is not approved for disbursement")
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutInput{
		ProductName: fmt.Sprintf("Loan Disbursement to %s", app.FullName),
		Amount:      app.LoanAmount,
		SuccessURL:  s.cfg.DisburseSuccessURL,
		CancelURL:   s.cfg.DisburseCancelURL,
	})
	if err != nil {
		s.logger.Error("disbursement checkout failed", zap.String("application_id", app.ID), zap.Error(err))
		return "", apperrors.NewUpstreamFailure("payment gateway error", err)
	}
	return url, nil
}

// RepaymentCheckout opens a hosted checkout for the borrower to repay the
// owed amount.
func (s *PaymentService) RepaymentCheckout(ctx context.Context, applicationID string) (string, error) {
	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return "", err
	}
	if app.RepayAmount == nil {
		return "", apperrors.NewInvalidTransition("no repayment is due for this application")
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutInput{
		ProductName: fmt.Sprintf("Loan Repayment - %s", app.LoanTitle),
		Amount:      *app.RepayAmount,
		SuccessURL:  fmt.Sprintf("%s/%s", s.cfg.RepaySuccessURL, app.ID),
		CancelURL:   s.cfg.RepayCancelURL,
	})
	if err != nil {
		s.logger.Error("repayment checkout failed", zap.String("application_id", app.ID), zap.Error(err))
		return "", apperrors.NewUpstreamFailure("payment gateway error", err)
	}
	return url, nil
}
