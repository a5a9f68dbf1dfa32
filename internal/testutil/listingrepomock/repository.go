package listingrepomock

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
)

// Repo is a function-field mock of repository.ListingRepository.
type Repo struct {
	CreateFn  func(ctx context.Context, listing *domain.Listing) error
	UpdateFn  func(ctx context.Context, listing *domain.Listing) error
	GetByIDFn func(ctx context.Context, id string) (*domain.Listing, error)
	ListFn    func(ctx context.Context) ([]domain.Listing, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (r *Repo) Create(ctx context.Context, listing *domain.Listing) error {
	if r.CreateFn == nil {
		return nil
	}
	return r.CreateFn(ctx, listing)
}

func (r *Repo) Update(ctx context.Context, listing *domain.Listing) error {
	if r.UpdateFn == nil {
		return nil
	}
	return r.UpdateFn(ctx, listing)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	if r.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return r.GetByIDFn(ctx, id)
}

func (r *Repo) List(ctx context.Context) ([]domain.Listing, error) {
	if r.ListFn == nil {
		return nil, nil
	}
	return r.ListFn(ctx)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if r.DeleteFn == nil {
		return pgx.ErrNoRows
	}
	return r.DeleteFn(ctx, id)
}
