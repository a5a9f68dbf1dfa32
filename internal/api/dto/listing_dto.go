package dto

import (
	"time"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
)

// ListingRequest payload for creating or patching a listing. Pointer fields
// distinguish "absent" from zero on partial updates.
type ListingRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Amount       *float64 `json:"amount"`
	InterestRate *float64 `json:"interestRate"`
	TermMonths   *int     `json:"termMonths"`
	Category     *string  `json:"category"`
	ImageURL     *string  `json:"imageURL"`
}

// ListingResponse response shape.
type ListingResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	InterestRate float64   `json:"interestRate"`
	TermMonths   int       `json:"termMonths"`
	Category     string    `json:"category"`
	ImageURL     *string   `json:"imageURL,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewListingResponse maps a domain listing.
func NewListingResponse(listing *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:           listing.ID,
		Title:        listing.Title,
		Description:  listing.Description,
		Amount:       listing.Amount,
		InterestRate: listing.InterestRate,
		TermMonths:   listing.TermMonths,
		Category:     listing.Category,
		ImageURL:     listing.ImageURL,
		CreatedAt:    listing.CreatedAt,
		UpdatedAt:    listing.UpdatedAt,
	}
}

// NewListingResponses maps a slice of domain listings.
func NewListingResponses(listings []domain.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, NewListingResponse(&listings[i]))
	}
	return out
}
