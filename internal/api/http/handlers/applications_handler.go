package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/api/dto"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/auth"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/service"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

// ApplicationsHandler exposes the loan-application workflow.
type ApplicationsHandler struct {
	apps *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{apps: applicationService}
}

// Apply handles POST /apply-loan.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplyLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	app, err := h.apps.Submit(c.Context(), service.SubmitInput{
		LoanID:        req.LoanID,
		LoanTitle:     req.LoanTitle,
		FullName:      req.FullName,
		BorrowerEmail: req.BorrowerEmail,
		LoanAmount:    req.LoanAmount,
		Details:       req.Details,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applicationId": app.ID})
}

// List handles GET /applications (admin).
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	apps, err := h.apps.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewApplicationResponses(apps))
}

// Get handles GET /applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	app, err := h.apps.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewApplicationResponse(app))
}

// ListByBorrower handles GET /applications/borrower/:email.
func (h *ApplicationsHandler) ListByBorrower(c *fiber.Ctx) error {
	apps, err := h.apps.ListByBorrower(c.Context(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewApplicationResponses(apps))
}

// Approve handles PATCH /applications/approve/:id (admin).
func (h *ApplicationsHandler) Approve(c *fiber.Ctx) error {
	var req dto.ApproveApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RepayAmount == 0 || req.Deadline == "" {
		return apperrors.NewValidationError("repayAmount & deadline required", nil)
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return err
	}

	if _, err := h.apps.Approve(c.Context(), actorFromContext(c), c.Params("id"), req.RepayAmount, deadline); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Approved successfully"})
}

// Disburse handles PATCH /applications/disburse/:id (admin).
func (h *ApplicationsHandler) Disburse(c *fiber.Ctx) error {
	if _, err := h.apps.Disburse(c.Context(), actorFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Reject handles both PATCH /applications/reject/:id and
// PATCH /applications/:id/reject (admin); the legacy client used either.
func (h *ApplicationsHandler) Reject(c *fiber.Ctx) error {
	if _, err := h.apps.Reject(c.Context(), actorFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Pay handles PATCH /applications/pay/:id, the fee payment confirmation
// callback.
func (h *ApplicationsHandler) Pay(c *fiber.Ctx) error {
	if _, err := h.apps.MarkFeePaid(c.Context(), actorFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Repay handles PATCH /applications/repay/:id, the repayment confirmation
// callback.
func (h *ApplicationsHandler) Repay(c *fiber.Ctx) error {
	if _, err := h.apps.MarkRepaid(c.Context(), actorFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// AdminUpdate handles PATCH /applications/:id (admin). Only annotation fields
// are patchable; status changes must go through the named transitions.
func (h *ApplicationsHandler) AdminUpdate(c *fiber.Ctx) error {
	var req dto.AdminUpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status != nil {
		return apperrors.NewValidationError("status cannot be patched; use the transition endpoints", nil)
	}

	patch := service.AdminPatch{Comments: req.Comments}
	if req.FeeStatus != nil {
		feeStatus := domain.FeeStatus(*req.FeeStatus)
		patch.FeeStatus = &feeStatus
	}

	if _, err := h.apps.AdminUpdate(c.Context(), c.Params("id"), patch); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Application updated"})
}

// Cancel handles DELETE /applications/:id. Only the owning borrower may
// cancel, and only while the application is still pending.
func (h *ApplicationsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.apps.Cancel(c.Context(), c.Params("id"), principal.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Application cancelled successfully"})
}

// parseDeadline accepts RFC 3339 or a bare YYYY-MM-DD date.
func parseDeadline(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.NewValidationError("deadline must be an RFC 3339 timestamp or YYYY-MM-DD date", nil)
}
