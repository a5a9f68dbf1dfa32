package events

import (
	"time"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationApproved  EventType = "application_approved"
	EventApplicationRejected  EventType = "application_rejected"
	EventApplicationDisbursed EventType = "application_disbursed"
	EventApplicationFeePaid   EventType = "application_fee_paid"
	EventApplicationRepaid    EventType = "application_repaid"
	EventUserRoleChanged      EventType = "user_role_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ApplicationID string      `json:"application_id,omitempty"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	BorrowerEmail string  `json:"borrower_email"`
	LoanTitle     string  `json:"loan_title,omitempty"`
	LoanAmount    float64 `json:"loan_amount"`
}

// ApplicationApprovedPayload payload.
type ApplicationApprovedPayload struct {
	RepayAmount float64   `json:"repay_amount"`
	Deadline    time.Time `json:"deadline"`
}

// ApplicationStatusPayload carries a status move.
type ApplicationStatusPayload struct {
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID  string      `json:"user_id"`
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}
