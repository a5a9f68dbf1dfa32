package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/events"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/repository"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

// UserService handles admin-side account management.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// GetByEmail looks up a single account by its exact email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// ListMembers returns borrower and manager accounts for the admin dashboard.
func (s *UserService) ListMembers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRoles(ctx, []domain.Role{domain.RoleBorrower, domain.RoleManager})
}

// GetManagerProfile returns the first manager account.
func (s *UserService) GetManagerProfile(ctx context.Context) (*domain.User, error) {
	user, err := s.users.GetFirstByRole(ctx, domain.RoleManager)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("manager", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateRole changes an account's role. Moving to suspended records the
// reason/feedback; moving to any other role clears both.
func (s *UserService) UpdateRole(ctx context.Context, actor events.Actor, id string, role domain.Role, suspendReason, suspendFeedback string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidIdentifier("malformed user id")
	}
	if role == "" {
		return nil, apperrors.NewValidationError("role is required", nil)
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	if role != domain.RoleSuspended {
		suspendReason = ""
		suspendFeedback = ""
	}

	before, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, id, role, suspendReason, suspendFeedback)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	if s.dispatcher != nil && before.Role != updated.Role {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRoleChanged,
			Actor:     actor,
			Timestamp: time.Now(),
			Payload: events.UserRoleChangedPayload{
				UserID:  updated.ID,
				OldRole: before.Role,
				NewRole: updated.Role,
			},
		})
	}
	return updated, nil
}
