package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/events"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/payment"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/repository"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

// ApplicationService owns the loan-application state machine.
//
// Valid edges: pending -> approved | rejected, approved -> disbursed.
// Rejecting an already-rejected application is a no-op success; rejecting
// from approved or disbursed fails. Fee/repay flags only move unpaid -> paid.
type ApplicationService struct {
	apps          repository.ApplicationRepository
	confirmations payment.ConfirmationStore
	dispatcher    events.Dispatcher
}

// NewApplicationService constructs the service.
func NewApplicationService(apps repository.ApplicationRepository, confirmations payment.ConfirmationStore, dispatcher events.Dispatcher) *ApplicationService {
	return &ApplicationService{apps: apps, confirmations: confirmations, dispatcher: dispatcher}
}

// SubmitInput describes a borrower's application.
type SubmitInput struct {
	LoanID        *string
	LoanTitle     string
	FullName      string
	BorrowerEmail string
	LoanAmount    float64
	Details       map[string]any
}

// Submit creates a pending application with the fee unpaid.
func (s *ApplicationService) Submit(ctx context.Context, input SubmitInput) (*domain.LoanApplication, error) {
	if input.BorrowerEmail == "" {
		return nil, apperrors.NewValidationError("borrowerEmail is required", nil)
	}
	if input.LoanID != nil {
		if _, err := uuid.Parse(*input.LoanID); err != nil {
			return nil, apperrors.NewInvalidIdentifier("malformed loan id")
		}
	}

	app := &domain.LoanApplication{
		LoanID:        input.LoanID,
		LoanTitle:     input.LoanTitle,
		FullName:      input.FullName,
		BorrowerEmail: input.BorrowerEmail,
		LoanAmount:    input.LoanAmount,
		Details:       input.Details,
		Status:        domain.ApplicationStatusPending,
		FeeStatus:     domain.FeeStatusUnpaid,
	}
	if app.Details == nil {
		app.Details = map[string]any{}
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventApplicationSubmitted, app.ID,
		events.Actor{Email: app.BorrowerEmail, Role: domain.RoleBorrower},
		events.ApplicationSubmittedPayload{
			BorrowerEmail: app.BorrowerEmail,
			LoanTitle:     app.LoanTitle,
			LoanAmount:    app.LoanAmount,
		})
	return app, nil
}

// Get fetches a single application.
func (s *ApplicationService) Get(ctx context.Context, id string) (*domain.LoanApplication, error) {
	return s.fetch(ctx, id)
}

// List returns every application, newest first.
func (s *ApplicationService) List(ctx context.Context) ([]domain.LoanApplication, error) {
	return s.apps.List(ctx)
}

// ListByBorrower matches the borrower email case-insensitively. A blank email
// or no match yields an empty slice, never an error.
func (s *ApplicationService) ListByBorrower(ctx context.Context, email string) ([]domain.LoanApplication, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return []domain.LoanApplication{}, nil
	}
	apps, err := s.apps.ListByBorrowerEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []domain.LoanApplication{}
	}
	return apps, nil
}

// Approve moves a pending application to approved and fixes the repayment
// terms.
func (s *ApplicationService) Approve(ctx context.Context, actor events.Actor, id string, repayAmount float64, deadline time.Time) (*domain.LoanApplication, error) {
	if repayAmount <= 0 {
		return nil, apperrors.NewInvalidTransition("repayAmount must be positive")
	}
	if deadline.IsZero() {
		return nil, apperrors.NewInvalidTransition("deadline is required")
	}

	app, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusPending {
		return nil, apperrors.NewInvalidTransition("only pending applications can be approved")
	}

	now := time.Now()
	repayStatus := domain.RepayStatusUnpaid
	app.Status = domain.ApplicationStatusApproved
	app.RepayAmount = &repayAmount
	app.Deadline = &deadline
	app.RepayStatus = &repayStatus
	app.ApprovedAt = &now

	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventApplicationApproved, app.ID, actor,
		events.ApplicationApprovedPayload{RepayAmount: repayAmount, Deadline: deadline})
	return app, nil
}

// Disburse moves an approved application to disbursed. Invoked by the admin
// disbursement flow after funds have been sent through the gateway.
func (s *ApplicationService) Disburse(ctx context.Context, actor events.Actor, id string) (*domain.LoanApplication, error) {
	app, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusApproved {
		return nil, apperrors.NewInvalidTransition("only approved applications can be disbursed")
	}

	now := time.Now()
	app.Status = domain.ApplicationStatusDisbursed
	app.DisbursedAt = &now

	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventApplicationDisbursed, app.ID, actor,
		events.ApplicationStatusPayload{OldStatus: domain.ApplicationStatusApproved, NewStatus: domain.ApplicationStatusDisbursed})
	return app, nil
}

// Reject moves a pending application to rejected. Rejecting twice is a
// no-op success.
func (s *ApplicationService) Reject(ctx context.Context, actor events.Actor, id string) (*domain.LoanApplication, error) {
	app, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status == domain.ApplicationStatusRejected {
		return app, nil
	}
	if app.Status != domain.ApplicationStatusPending {
		return nil, apperrors.NewInvalidTransition("only pending applications can be rejected")
	}

	old := app.Status
	app.Status = domain.ApplicationStatusRejected

	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventApplicationRejected, app.ID, actor,
		events.ApplicationStatusPayload{OldStatus: old, NewStatus: domain.ApplicationStatusRejected})
	return app, nil
}

// MarkFeePaid records a confirmed fee payment. The caller is responsible for
// having verified that funds actually moved; this only records the outcome.
// Applying it twice leaves the flags at paid without error.
func (s *ApplicationService) MarkFeePaid(ctx context.Context, actor events.Actor, id string) (*domain.LoanApplication, error) {
	app, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	paid := domain.RepayStatusPaid
	app.FeeStatus = domain.FeeStatusPaid
	app.RepayStatus = &paid
	if app.PaidAt == nil {
		now := time.Now()
		app.PaidAt = &now
	}

	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	if s.firstConfirmation(ctx, app.ID, "fee") {
		s.publish(ctx, events.EventApplicationFeePaid, app.ID, actor, nil)
	}
	return app, nil
}

// MarkRepaid records a confirmed loan repayment; same caller contract and
// idempotency as MarkFeePaid.
func (s *ApplicationService) MarkRepaid(ctx context.Context, actor events.Actor, id string) (*domain.LoanApplication, error) {
	app, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	paid := domain.RepayStatusPaid
	app.RepayStatus = &paid

	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	if s.firstConfirmation(ctx, app.ID, "repay") {
		s.publish(ctx, events.EventApplicationRepaid, app.ID, actor, nil)
	}
	return app, nil
}

// Cancel deletes a pending application, owner only.
func (s *ApplicationService) Cancel(ctx context.Context, id, requesterEmail string) error {
	app, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(app.BorrowerEmail, requesterEmail) {
		return apperrors.NewForbidden("only the applicant can cancel this application")
	}
	if app.Status != domain.ApplicationStatusPending {
		return apperrors.NewInvalidTransition("only pending applications can be cancelled")
	}

	if err := s.apps.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("application", nil)
		}
		return err
	}
	return nil
}

// AdminPatch is the restricted escape hatch alongside the named transitions.
// Status is deliberately not patchable here; the state machine stays
// monotonic.
type AdminPatch struct {
	Comments  *string
	FeeStatus *domain.FeeStatus
}

// AdminUpdate applies a partial patch of annotation fields.
func (s *ApplicationService) AdminUpdate(ctx context.Context, id string, patch AdminPatch) (*domain.LoanApplication, error) {
	app, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FeeStatus != nil {
		switch {
		case *patch.FeeStatus == app.FeeStatus:
			// no-op
		case app.FeeStatus == domain.FeeStatusUnpaid && *patch.FeeStatus == domain.FeeStatusPaid:
			app.FeeStatus = domain.FeeStatusPaid
		default:
			return nil, apperrors.NewValidationError("feeStatus can only move unpaid to paid", nil)
		}
	}
	if patch.Comments != nil {
		app.Comments = patch.Comments
	}

	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) fetch(ctx context.Context, id string) (*domain.LoanApplication, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidIdentifier("malformed application id")
	}
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", nil)
		}
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) firstConfirmation(ctx context.Context, id, kind string) bool {
	if s.confirmations == nil {
		return true
	}
	first, err := s.confirmations.FirstConfirmation(ctx, id, kind)
	if err != nil {
		// dedupe is best effort; a store failure must not block the update
		return true
	}
	return first
}

func (s *ApplicationService) publish(ctx context.Context, eventType events.EventType, appID string, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		ApplicationID: appID,
		Actor:         actor,
		Timestamp:     time.Now(),
		Payload:       payload,
	})
}
