package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/testutil/listingrepomock"
)

func strPtr(s string) *string { return &s }

func TestCreateListing_RequiresTitle(t *testing.T) {
	svc := NewListingService(&listingrepomock.Repo{})

	for _, input := range []ListingInput{{}, {Title: strPtr("")}} {
		_, err := svc.Create(context.Background(), input)
		if code := errCode(t, err); code != "VALIDATION_FAILED" {
			t.Fatalf("expected VALIDATION_FAILED, got %s", code)
		}
	}
}

func TestCreateListing_AppliesFields(t *testing.T) {
	var created *domain.Listing
	listings := &listingrepomock.Repo{
		CreateFn: func(ctx context.Context, listing *domain.Listing) error {
			listing.ID = uuid.NewString()
			created = listing
			return nil
		},
	}
	svc := NewListingService(listings)

	amount := 10000.0
	rate := 4.5
	listing, err := svc.Create(context.Background(), ListingInput{
		Title:        strPtr("Home Renovation"),
		Amount:       &amount,
		InterestRate: &rate,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "Home Renovation" || created.Amount != 10000 || created.InterestRate != 4.5 {
		t.Fatalf("fields not applied: %+v", created)
	}
	if listing.ID == "" {
		t.Fatal("store-assigned id must surface on the result")
	}
}

func TestGetListing_MalformedID(t *testing.T) {
	svc := NewListingService(&listingrepomock.Repo{})

	_, err := svc.Get(context.Background(), "99")
	if code := errCode(t, err); code != "INVALID_IDENTIFIER" {
		t.Fatalf("expected INVALID_IDENTIFIER, got %s", code)
	}
}

func TestListListings_NeverNil(t *testing.T) {
	svc := NewListingService(&listingrepomock.Repo{})

	listings, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listings == nil {
		t.Fatal("empty pool must serialize as [] not null")
	}
}

func TestUpdateListing_PartialPatch(t *testing.T) {
	id := uuid.NewString()
	var saved *domain.Listing
	listings := &listingrepomock.Repo{
		GetByIDFn: func(ctx context.Context, _ string) (*domain.Listing, error) {
			return &domain.Listing{ID: id, Title: "Original", Amount: 5000, Category: "personal"}, nil
		},
		UpdateFn: func(ctx context.Context, listing *domain.Listing) error {
			saved = listing
			return nil
		},
	}
	svc := NewListingService(listings)

	amount := 7500.0
	if _, err := svc.Update(context.Background(), id, ListingInput{Amount: &amount}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if saved.Amount != 7500 {
		t.Fatalf("expected amount 7500, got %v", saved.Amount)
	}
	if saved.Title != "Original" || saved.Category != "personal" {
		t.Fatalf("untouched fields must survive the patch: %+v", saved)
	}
}

func TestUpdateListing_EmptyTitleRejected(t *testing.T) {
	id := uuid.NewString()
	listings := &listingrepomock.Repo{
		GetByIDFn: func(ctx context.Context, _ string) (*domain.Listing, error) {
			return &domain.Listing{ID: id, Title: "Original"}, nil
		},
	}
	svc := NewListingService(listings)

	_, err := svc.Update(context.Background(), id, ListingInput{Title: strPtr("")})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestDeleteListing_NotFound(t *testing.T) {
	svc := NewListingService(&listingrepomock.Repo{})

	err := svc.Delete(context.Background(), uuid.NewString())
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}
