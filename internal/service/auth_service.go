package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/auth"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/config"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/repository"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users         repository.UserRepository
	tokenMgr      *auth.TokenManager
	bcryptCost    int
	adminEmail    string
	adminPassword string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:         users,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:    cfg.Auth.BcryptCost,
		adminEmail:    cfg.Auth.AdminEmail,
		adminPassword: cfg.Auth.AdminPassword,
	}
}

// RegisterInput describes a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	PhotoURL *string
}

// LoginResult is the issued session plus the profile fields returned to the
// client. User is nil for the bootstrap admin, which has no stored record.
type LoginResult struct {
	User      *domain.User
	Email     string
	Role      domain.Role
	Token     string
	ExpiresAt time.Time
}

// Register creates a new account. The plaintext password is hashed
// immediately and never stored or logged.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleBorrower
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("user already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		PhotoURL:     input.PhotoURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a caller and issues a session token.
//
// The configured admin credential pair short-circuits before any store
// lookup. For stored accounts, an unknown email and a wrong password return
// the same undifferentiated error on purpose; suspension is checked before
// the password so a suspended account never learns whether its password was
// right.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	if s.adminEmail != "" && email == s.adminEmail && password == s.adminPassword {
		token, exp, err := s.tokenMgr.GenerateToken(email, domain.RoleAdmin, "")
		if err != nil {
			return nil, err
		}
		return &LoginResult{Email: email, Role: domain.RoleAdmin, Token: token, ExpiresAt: exp}, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("invalid credentials", nil)
		}
		return nil, err
	}

	if user.Suspended() {
		return nil, apperrors.NewForbidden("your account is suspended")
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewValidationError("invalid credentials", nil)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.Email, user.Role, user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Email: user.Email, Role: user.Role, Token: token, ExpiresAt: exp}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
