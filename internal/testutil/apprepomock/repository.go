package apprepomock

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
)

// Repo is a function-field mock of repository.ApplicationRepository.
type Repo struct {
	CreateFn              func(ctx context.Context, app *domain.LoanApplication) error
	UpdateFn              func(ctx context.Context, app *domain.LoanApplication) error
	GetByIDFn             func(ctx context.Context, id string) (*domain.LoanApplication, error)
	ListFn                func(ctx context.Context) ([]domain.LoanApplication, error)
	ListByBorrowerEmailFn func(ctx context.Context, email string) ([]domain.LoanApplication, error)
	DeleteFn              func(ctx context.Context, id string) error
}

func (r *Repo) Create(ctx context.Context, app *domain.LoanApplication) error {
	if r.CreateFn == nil {
		return nil
	}
	return r.CreateFn(ctx, app)
}

func (r *Repo) Update(ctx context.Context, app *domain.LoanApplication) error {
	if r.UpdateFn == nil {
		return nil
	}
	return r.UpdateFn(ctx, app)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.LoanApplication, error) {
	if r.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return r.GetByIDFn(ctx, id)
}

func (r *Repo) List(ctx context.Context) ([]domain.LoanApplication, error) {
	if r.ListFn == nil {
		return nil, nil
	}
	return r.ListFn(ctx)
}

func (r *Repo) ListByBorrowerEmail(ctx context.Context, email string) ([]domain.LoanApplication, error) {
	if r.ListByBorrowerEmailFn == nil {
		return nil, nil
	}
	return r.ListByBorrowerEmailFn(ctx, email)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if r.DeleteFn == nil {
		return pgx.ErrNoRows
	}
	return r.DeleteFn(ctx, id)
}
