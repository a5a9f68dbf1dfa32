package domain

import "time"

// Listing is a loan offer managed by admins/managers. Listings have no
// transition rules; applications against them carry the state machine.
type Listing struct {
	ID           string
	Title        string
	Description  string
	Amount       float64
	InterestRate float64
	TermMonths   int
	Category     string
	ImageURL     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
