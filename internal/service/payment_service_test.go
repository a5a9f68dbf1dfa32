package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/config"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/payment"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/testutil/apprepomock"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/testutil/gatewaymock"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

func testStripeConfig() config.StripeConfig {
	return config.StripeConfig{
		Currency:           "usd",
		DisburseSuccessURL: "https://app.test/disburse-success",
		DisburseCancelURL:  "https://app.test/disburse-cancel",
		RepaySuccessURL:    "https://app.test/payment-success",
		RepayCancelURL:     "https://app.test/payment-cancel",
	}
}

func paymentServiceFor(gateway payment.Gateway, apps *apprepomock.Repo) *PaymentService {
	appSvc := NewApplicationService(apps, nil, nil)
	return NewPaymentService(gateway, appSvc, testStripeConfig(), zap.NewNop())
}

func TestCreateIntent_RejectsBadAmounts(t *testing.T) {
	svc := paymentServiceFor(&gatewaymock.Gateway{}, &apprepomock.Repo{})

	for _, amount := range []float64{0, -12.5, math.NaN(), math.Inf(1)} {
		_, err := svc.CreateIntent(context.Background(), amount)
		if code := errCode(t, err); code != "VALIDATION_FAILED" {
			t.Fatalf("amount %v: expected VALIDATION_FAILED, got %s", amount, code)
		}
	}
}

func TestCreateIntent_ReturnsClientSecret(t *testing.T) {
	gateway := &gatewaymock.Gateway{
		CreatePaymentIntentFn: func(ctx context.Context, amount float64) (string, error) {
			if amount != 19.99 {
				t.Fatalf("unexpected amount %v", amount)
			}
			return "pi_secret_abc", nil
		},
	}
	svc := paymentServiceFor(gateway, &apprepomock.Repo{})

	secret, err := svc.CreateIntent(context.Background(), 19.99)
	if err != nil {
		t.Fatalf("createIntent: %v", err)
	}
	if secret != "pi_secret_abc" {
		t.Fatalf("unexpected secret %q", secret)
	}
}

func TestCreateIntent_HidesGatewayError(t *testing.T) {
	gateway := &gatewaymock.Gateway{
		CreatePaymentIntentFn: func(ctx context.Context, amount float64) (string, error) {
			return "", errors.New("stripe: api key expired sk_live_deadbeef")
		},
	}
	svc := paymentServiceFor(gateway, &apprepomock.Repo{})

	_, err := svc.CreateIntent(context.Background(), 10)
	de := apperrors.ToDomainError(err)
	if de.Code != "UPSTREAM_FAILURE" {
		t.Fatalf("expected UPSTREAM_FAILURE, got %s", de.Code)
	}
	if de.Message != "payment gateway error" {
		t.Fatalf("upstream detail must not leak to clients, got %q", de.Message)
	}
}

func TestDisbursementCheckout_RequiresApproved(t *testing.T) {
	id := uuid.NewString()
	apps := &apprepomock.Repo{
		GetByIDFn: func(ctx context.Context, _ string) (*domain.LoanApplication, error) {
			return pendingApplication(id), nil
		},
	}
	svc := paymentServiceFor(&gatewaymock.Gateway{}, apps)

	_, err := svc.DisbursementCheckout(context.Background(), id)
	if code := errCode(t, err); code != "INVALID_TRANSITION" {
		t.Fatalf("expected INVALID_TRANSITION, got %s", code)
	}
}

func TestDisbursementCheckout_BuildsSession(t *testing.T) {
	id := uuid.NewString()
	apps := &apprepomock.Repo{
		GetByIDFn: func(ctx context.Context, _ string) (*domain.LoanApplication, error) {
			app := pendingApplication(id)
			app.Status = domain.ApplicationStatusApproved
			app.FullName = "Asha Rahman"
			app.LoanAmount = 2500
			return app, nil
		},
	}
	var captured payment.CheckoutInput
	gateway := &gatewaymock.Gateway{
		CreateCheckoutSessionFn: func(ctx context.Context, in payment.CheckoutInput) (string, error) {
			captured = in
			return "https://checkout.test/cs_123", nil
		},
	}
	svc := paymentServiceFor(gateway, apps)

	url, err := svc.DisbursementCheckout(context.Background(), id)
	if err != nil {
		t.Fatalf("disbursementCheckout: %v", err)
	}
	if url != "https://checkout.test/cs_123" {
		t.Fatalf("unexpected url %q", url)
	}
	if captured.ProductName != "Loan Disbursement to Asha Rahman" {
		t.Fatalf("unexpected product name %q", captured.ProductName)
	}
	if captured.Amount != 2500 {
		t.Fatalf("expected loan amount 2500, got %v", captured.Amount)
	}
	if captured.SuccessURL != "https://app.test/disburse-success" || captured.CancelURL != "https://app.test/disburse-cancel" {
		t.Fatalf("unexpected redirect urls: %+v", captured)
	}
}

func TestRepaymentCheckout_RequiresRepaymentTerms(t *testing.T) {
	id := uuid.NewString()
	apps := &apprepomock.Repo{
		GetByIDFn: func(ctx context.Context, _ string) (*domain.LoanApplication, error) {
			return pendingApplication(id), nil
		},
	}
	svc := paymentServiceFor(&gatewaymock.Gateway{}, apps)

	_, err := svc.RepaymentCheckout(context.Background(), id)
	if code := errCode(t, err); code != "INVALID_TRANSITION" {
		t.Fatalf("expected INVALID_TRANSITION, got %s", code)
	}
}

func TestRepaymentCheckout_UsesRepayAmountAndSuccessPath(t *testing.T) {
	id := uuid.NewString()
	repay := 550.0
	apps := &apprepomock.Repo{
		GetByIDFn: func(ctx context.Context, _ string) (*domain.LoanApplication, error) {
			app := pendingApplication(id)
			app.Status = domain.ApplicationStatusApproved
			app.LoanTitle = "Home Renovation"
			app.RepayAmount = &repay
			return app, nil
		},
	}
	var captured payment.CheckoutInput
	gateway := &gatewaymock.Gateway{
		CreateCheckoutSessionFn: func(ctx context.Context, in payment.CheckoutInput) (string, error) {
			captured = in
			return "https://checkout.test/cs_456", nil
		},
	}
	svc := paymentServiceFor(gateway, apps)

	if _, err := svc.RepaymentCheckout(context.Background(), id); err != nil {
		t.Fatalf("repaymentCheckout: %v", err)
	}
	if captured.ProductName != "Loan Repayment - Home Renovation" {
		t.Fatalf("unexpected product name %q", captured.ProductName)
	}
	if captured.Amount != repay {
		t.Fatalf("expected repay amount %v, got %v", repay, captured.Amount)
	}
	if want := "https://app.test/payment-success/" + id; captured.SuccessURL != want {
		t.Fatalf("expected success url %q, got %q", want, captured.SuccessURL)
	}
}

func TestRepaymentCheckout_NotFound(t *testing.T) {
	svc := paymentServiceFor(&gatewaymock.Gateway{}, &apprepomock.Repo{})

	_, err := svc.RepaymentCheckout(context.Background(), uuid.NewString())
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}
