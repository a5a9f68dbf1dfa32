package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/api/dto"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/service"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

// PaymentsHandler exposes payment-gateway backed endpoints.
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: paymentService}
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentsHandler) CreateIntent(c *fiber.Ctx) error {
	var req dto.CreatePaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid amount provided", nil)
	}

	secret, err := h.payments.CreateIntent(c.Context(), req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(dto.PaymentIntentResponse{ClientSecret: secret})
}

// AdminSend handles POST /payment/admin/send/:applicationId (admin): hosted
// checkout for disbursing approved funds.
func (h *PaymentsHandler) AdminSend(c *fiber.Ctx) error {
	url, err := h.payments.DisbursementCheckout(c.Context(), c.Params("applicationId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CheckoutResponse{URL: url})
}

// UserRepay handles POST /payment/user/repay/:id: hosted checkout for the
// borrower's repayment.
func (h *PaymentsHandler) UserRepay(c *fiber.Ctx) error {
	url, err := h.payments.RepaymentCheckout(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CheckoutResponse{URL: url})
}
