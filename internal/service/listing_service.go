package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/repository"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

// ListingService manages the loan listing pool. Listings carry no state
// machine; this is plain CRUD with identifier validation.
type ListingService struct {
	listings repository.ListingRepository
}

// NewListingService constructs the service.
func NewListingService(listings repository.ListingRepository) *ListingService {
	return &ListingService{listings: listings}
}

// ListingInput describes listing fields for create and update.
type ListingInput struct {
	Title        *string
	Description  *string
	Amount       *float64
	InterestRate *float64
	TermMonths   *int
	Category     *string
	ImageURL     *string
}

// Create adds a listing.
func (s *ListingService) Create(ctx context.Context, input ListingInput) (*domain.Listing, error) {
	if input.Title == nil || *input.Title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}

	listing := &domain.Listing{Title: *input.Title}
	applyListingInput(listing, input)

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Get fetches a single listing.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.fetch(ctx, id)
}

// List returns all listings, newest first.
func (s *ListingService) List(ctx context.Context) ([]domain.Listing, error) {
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, nil
}

// Update applies only the provided fields.
func (s *ListingService) Update(ctx context.Context, id string, input ListingInput) (*domain.Listing, error) {
	listing, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	applyListingInput(listing, input)
	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.NewValidationError("title cannot be empty", nil)
		}
		listing.Title = *input.Title
	}

	if err := s.listings.Update(ctx, listing); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("loan", nil)
		}
		return nil, err
	}
	return listing, nil
}

// Delete removes a listing.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidIdentifier("malformed loan id")
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("loan", nil)
		}
		return err
	}
	return nil
}

func (s *ListingService) fetch(ctx context.Context, id string) (*domain.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidIdentifier("malformed loan id")
	}
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("loan", nil)
		}
		return nil, err
	}
	return listing, nil
}

func applyListingInput(listing *domain.Listing, input ListingInput) {
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Amount != nil {
		listing.Amount = *input.Amount
	}
	if input.InterestRate != nil {
		listing.InterestRate = *input.InterestRate
	}
	if input.TermMonths != nil {
		listing.TermMonths = *input.TermMonths
	}
	if input.Category != nil {
		listing.Category = *input.Category
	}
	if input.ImageURL != nil {
		listing.ImageURL = input.ImageURL
	}
}
