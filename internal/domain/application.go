package domain

import "time"

// ApplicationStatus enumerates lifecycle states for loan applications.
//
// Valid edges: pending -> approved | rejected, approved -> disbursed.
// Rejected applications and fully repaid disbursed applications are terminal.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusDisbursed ApplicationStatus = "disbursed"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// FeeStatus tracks the application fee. It only moves unpaid -> paid.
type FeeStatus string

const (
	FeeStatusUnpaid FeeStatus = "unpaid"
	FeeStatusPaid   FeeStatus = "paid"
)

// RepayStatus tracks loan repayment. Absent until approval, then only moves
// unpaid -> paid.
type RepayStatus string

const (
	RepayStatusUnpaid RepayStatus = "unpaid"
	RepayStatusPaid   RepayStatus = "paid"
)

// LoanApplication is a borrower's request against a listing. BorrowerEmail
// and LoanID are by-convention references only; no referential integrity is
// enforced between collections.
type LoanApplication struct {
	ID            string
	LoanID        *string
	LoanTitle     string
	FullName      string
	BorrowerEmail string
	LoanAmount    float64
	Details       map[string]any
	Status        ApplicationStatus
	FeeStatus     FeeStatus
	RepayStatus   *RepayStatus
	RepayAmount   *float64
	Deadline      *time.Time
	Comments      *string
	CreatedAt     time.Time
	ApprovedAt    *time.Time
	DisbursedAt   *time.Time
	PaidAt        *time.Time
	UpdatedAt     time.Time
}

// Terminal reports whether no further status transition is allowed.
func (a *LoanApplication) Terminal() bool {
	if a.Status == ApplicationStatusRejected {
		return true
	}
	return a.Status == ApplicationStatusDisbursed && a.RepayStatus != nil && *a.RepayStatus == RepayStatusPaid
}
