package userrepomock

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
)

// Repo is a function-field mock of repository.UserRepository. Unset fields
// behave like an empty store.
type Repo struct {
	CreateFn         func(ctx context.Context, user *domain.User) error
	GetByIDFn        func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	ListByRolesFn    func(ctx context.Context, roles []domain.Role) ([]domain.User, error)
	GetFirstByRoleFn func(ctx context.Context, role domain.Role) (*domain.User, error)
	UpdateRoleFn     func(ctx context.Context, id string, role domain.Role, suspendReason, suspendFeedback string) (*domain.User, error)
}

func (r *Repo) Create(ctx context.Context, user *domain.User) error {
	if r.CreateFn == nil {
		return nil
	}
	return r.CreateFn(ctx, user)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return r.GetByIDFn(ctx, id)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.GetByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return r.GetByEmailFn(ctx, email)
}

func (r *Repo) ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	if r.ListByRolesFn == nil {
		return nil, nil
	}
	return r.ListByRolesFn(ctx, roles)
}

func (r *Repo) GetFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	if r.GetFirstByRoleFn == nil {
		return nil, pgx.ErrNoRows
	}
	return r.GetFirstByRoleFn(ctx, role)
}

func (r *Repo) UpdateRole(ctx context.Context, id string, role domain.Role, suspendReason, suspendFeedback string) (*domain.User, error) {
	if r.UpdateRoleFn == nil {
		return nil, pgx.ErrNoRows
	}
	return r.UpdateRoleFn(ctx, id, role, suspendReason, suspendFeedback)
}
