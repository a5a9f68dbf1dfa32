package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/auth"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/config"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/testutil/userrepomock"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
			AdminEmail:            "admin@site.test",
			AdminPassword:         "admin-pass",
		},
	}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	return apperrors.ToDomainError(err).Code
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestRegister_StoresHashedPassword(t *testing.T) {
	var created *domain.User
	users := &userrepomock.Repo{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			user.ID = "u-1"
			created = user
			return nil
		},
	}
	svc := NewAuthService(testConfig(), users)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Asha",
		Email:    "asha@x.com",
		Password: "s3cret-pw",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleBorrower {
		t.Fatalf("expected default role borrower, got %s", user.Role)
	}
	if created.PasswordHash == "s3cret-pw" || created.PasswordHash == "" {
		t.Fatalf("plaintext password must never be stored, got %q", created.PasswordHash)
	}
	if err := auth.ComparePassword(created.PasswordHash, "s3cret-pw"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &userrepomock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u-1", Email: email}, nil
		},
	}
	svc := NewAuthService(testConfig(), users)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "asha@x.com", Password: "pw"})
	if code := errCode(t, err); code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %s", code)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewAuthService(testConfig(), &userrepomock.Repo{})

	for _, input := range []RegisterInput{
		{Email: "a@x.com", Password: "pw"},
		{Name: "A", Password: "pw"},
		{Name: "A", Email: "a@x.com"},
	} {
		_, err := svc.Register(context.Background(), input)
		if code := errCode(t, err); code != "VALIDATION_FAILED" {
			t.Fatalf("expected VALIDATION_FAILED for %+v, got %s", input, code)
		}
	}
}

func TestLogin_AdminBypassSkipsStore(t *testing.T) {
	users := &userrepomock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			t.Fatal("admin bypass must not hit the user store")
			return nil, nil
		},
	}
	svc := NewAuthService(testConfig(), users)

	result, err := svc.Login(context.Background(), "admin@site.test", "admin-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", result.Role)
	}

	claims, err := svc.TokenManager().ParseToken(result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != domain.RoleAdmin || claims.Email != "admin@site.test" || claims.UserID != "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_SuspendedBeforePasswordCheck(t *testing.T) {
	users := &userrepomock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{
				ID:           "u-1",
				Email:        email,
				Role:         domain.Role("Suspended"), // legacy mixed case
				PasswordHash: hashFor(t, "right-pw"),
			}, nil
		},
	}
	svc := NewAuthService(testConfig(), users)

	_, err := svc.Login(context.Background(), "bob@x.com", "right-pw")
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN for suspended account, got %s", code)
	}
}

func TestLogin_UndifferentiatedFailures(t *testing.T) {
	unknown := &userrepomock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
	}
	wrongPassword := &userrepomock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u-1", Email: email, Role: domain.RoleBorrower, PasswordHash: hashFor(t, "right-pw")}, nil
		},
	}

	_, errUnknown := NewAuthService(testConfig(), unknown).Login(context.Background(), "nobody@x.com", "pw")
	_, errWrong := NewAuthService(testConfig(), wrongPassword).Login(context.Background(), "bob@x.com", "wrong-pw")

	deUnknown := apperrors.ToDomainError(errUnknown)
	deWrong := apperrors.ToDomainError(errWrong)
	if deUnknown == nil || deWrong == nil {
		t.Fatal("both login failures must error")
	}
	if deUnknown.Code != deWrong.Code || deUnknown.Message != deWrong.Message {
		t.Fatalf("login failures must be indistinguishable: %v vs %v", deUnknown, deWrong)
	}
}

func TestLogin_SuccessEmbedsIdentityClaims(t *testing.T) {
	users := &userrepomock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u-42", Email: email, Role: domain.RoleManager, PasswordHash: hashFor(t, "pw")}, nil
		},
	}
	svc := NewAuthService(testConfig(), users)

	result, err := svc.Login(context.Background(), "mgr@x.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.TokenManager().ParseToken(result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Email != "mgr@x.com" || claims.Role != domain.RoleManager || claims.UserID != "u-42" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
