package dto

import (
	"time"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
)

// ApplyLoanRequest payload for submitting an application. Details carries the
// free-form form fields the frontend collects.
type ApplyLoanRequest struct {
	LoanID        *string        `json:"loanId"`
	LoanTitle     string         `json:"loanTitle"`
	FullName      string         `json:"fullName"`
	BorrowerEmail string         `json:"borrowerEmail"`
	LoanAmount    float64        `json:"loanAmount"`
	Details       map[string]any `json:"details"`
}

// ApproveApplicationRequest payload. Deadline accepts RFC 3339 or a bare
// YYYY-MM-DD date.
type ApproveApplicationRequest struct {
	RepayAmount float64 `json:"repayAmount"`
	Deadline    string  `json:"deadline"`
}

// AdminUpdateApplicationRequest is the restricted partial patch.
type AdminUpdateApplicationRequest struct {
	Status    *string `json:"status"`
	Comments  *string `json:"comments"`
	FeeStatus *string `json:"feeStatus"`
}

// ApplicationResponse response shape.
type ApplicationResponse struct {
	ID            string         `json:"id"`
	LoanID        *string        `json:"loanId,omitempty"`
	LoanTitle     string         `json:"loanTitle,omitempty"`
	FullName      string         `json:"fullName,omitempty"`
	BorrowerEmail string         `json:"borrowerEmail"`
	LoanAmount    float64        `json:"loanAmount"`
	Details       map[string]any `json:"details,omitempty"`
	Status        string         `json:"status"`
	FeeStatus     string         `json:"feeStatus"`
	RepayStatus   *string        `json:"repayStatus,omitempty"`
	RepayAmount   *float64       `json:"repayAmount,omitempty"`
	Deadline      *time.Time     `json:"deadline,omitempty"`
	Comments      *string        `json:"comments,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	ApprovedAt    *time.Time     `json:"approvedAt,omitempty"`
	DisbursedAt   *time.Time     `json:"disbursedAt,omitempty"`
	PaidAt        *time.Time     `json:"paidAt,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// NewApplicationResponse maps a domain application.
func NewApplicationResponse(app *domain.LoanApplication) ApplicationResponse {
	var repayStatus *string
	if app.RepayStatus != nil {
		value := string(*app.RepayStatus)
		repayStatus = &value
	}
	return ApplicationResponse{
		ID:            app.ID,
		LoanID:        app.LoanID,
		LoanTitle:     app.LoanTitle,
		FullName:      app.FullName,
		BorrowerEmail: app.BorrowerEmail,
		LoanAmount:    app.LoanAmount,
		Details:       app.Details,
		Status:        string(app.Status),
		FeeStatus:     string(app.FeeStatus),
		RepayStatus:   repayStatus,
		RepayAmount:   app.RepayAmount,
		Deadline:      app.Deadline,
		Comments:      app.Comments,
		CreatedAt:     app.CreatedAt,
		ApprovedAt:    app.ApprovedAt,
		DisbursedAt:   app.DisbursedAt,
		PaidAt:        app.PaidAt,
		UpdatedAt:     app.UpdatedAt,
	}
}

// NewApplicationResponses maps a slice of domain applications.
func NewApplicationResponses(apps []domain.LoanApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationResponse(&apps[i]))
	}
	return out
}
