package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/api/http/handlers"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/auth"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/config"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/observability"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/service"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/testutil/apprepomock"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/testutil/gatewaymock"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/testutil/listingrepomock"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/testutil/userrepomock"
)

type testDeps struct {
	users    *userrepomock.Repo
	apps     *apprepomock.Repo
	listings *listingrepomock.Repo
	gateway  *gatewaymock.Gateway
}

func newTestApp(t *testing.T, deps testDeps) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	if deps.users == nil {
		deps.users = &userrepomock.Repo{}
	}
	if deps.apps == nil {
		deps.apps = &apprepomock.Repo{}
	}
	if deps.listings == nil {
		deps.listings = &listingrepomock.Repo{}
	}
	if deps.gateway == nil {
		deps.gateway = &gatewaymock.Gateway{}
	}

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "router-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
			AdminEmail:            "admin@site.test",
			AdminPassword:         "admin-pass",
		},
		Stripe: config.StripeConfig{
			Currency:           "usd",
			DisburseSuccessURL: "https://app.test/disburse-success",
			DisburseCancelURL:  "https://app.test/disburse-cancel",
			RepaySuccessURL:    "https://app.test/payment-success",
			RepayCancelURL:     "https://app.test/payment-cancel",
		},
	}

	logger := zap.NewNop()
	authService := service.NewAuthService(cfg, deps.users)
	userService := service.NewUserService(deps.users, nil)
	listingService := service.NewListingService(deps.listings)
	applicationService := service.NewApplicationService(deps.apps, nil, nil)
	paymentService := service.NewPaymentService(deps.gateway, applicationService, cfg.Stripe, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService, userService),
		Listings:       handlers.NewListingsHandler(listingService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})
	return app, authService.TokenManager()
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func errorCodeOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, resp, &envelope)
	return envelope.Error.Code
}

func tokenFor(t *testing.T, tm *auth.TokenManager, email string, role domain.Role) string {
	t.Helper()
	token, _, err := tm.GenerateToken(email, role, "u-test")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestProtectedRoute_MissingHeader(t *testing.T) {
	app, _ := newTestApp(t, testDeps{})

	resp := doRequest(t, app, http.MethodGet, "/applications", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if code := errorCodeOf(t, resp); code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %s", code)
	}
}

func TestProtectedRoute_MalformedToken(t *testing.T) {
	app, _ := newTestApp(t, testDeps{})

	resp := doRequest(t, app, http.MethodGet, "/applications", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if code := errorCodeOf(t, resp); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}
}

func TestAdminRoute_RoleEnforced(t *testing.T) {
	app, tm := newTestApp(t, testDeps{})

	resp := doRequest(t, app, http.MethodGet, "/applications",
		tokenFor(t, tm, "bob@x.com", domain.RoleBorrower), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("borrower on an admin route: expected 403, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/applications",
		tokenFor(t, tm, "admin@site.test", domain.RoleAdmin), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", resp.StatusCode)
	}
}

func TestPublicListings_NoTokenNeeded(t *testing.T) {
	app, _ := newTestApp(t, testDeps{})

	resp := doRequest(t, app, http.MethodGet, "/loans", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var listings []map[string]any
	decodeBody(t, resp, &listings)
	if listings == nil {
		t.Fatal("empty pool must serialize as [] not null")
	}
}

func TestLogin_BootstrapAdmin(t *testing.T) {
	app, _ := newTestApp(t, testDeps{})

	resp := doRequest(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "admin@site.test",
		"password": "admin-pass",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Email string `json:"email"`
		Role  string `json:"role"`
		Token string `json:"token"`
	}
	decodeBody(t, resp, &result)
	if result.Role != "admin" || result.Token == "" {
		t.Fatalf("unexpected login payload: %+v", result)
	}
}

func TestApplyLoan_ReturnsApplicationID(t *testing.T) {
	created := uuid.NewString()
	deps := testDeps{apps: &apprepomock.Repo{
		CreateFn: func(ctx context.Context, app *domain.LoanApplication) error {
			app.ID = created
			return nil
		},
	}}
	app, tm := newTestApp(t, deps)

	resp := doRequest(t, app, http.MethodPost, "/apply-loan",
		tokenFor(t, tm, "bob@x.com", domain.RoleBorrower), map[string]any{
			"borrowerEmail": "bob@x.com",
			"loanTitle":     "Home Renovation",
			"loanAmount":    2500,
		})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		ApplicationID string `json:"applicationId"`
	}
	decodeBody(t, resp, &body)
	if body.ApplicationID != created {
		t.Fatalf("expected application id %q, got %q", created, body.ApplicationID)
	}
}

func TestApprove_MissingTermsRejectedAtTheEdge(t *testing.T) {
	app, tm := newTestApp(t, testDeps{})

	resp := doRequest(t, app, http.MethodPatch, "/applications/approve/"+uuid.NewString(),
		tokenFor(t, tm, "admin@site.test", domain.RoleAdmin), map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if code := errorCodeOf(t, resp); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestCancel_NonOwnerForbidden(t *testing.T) {
	id := uuid.NewString()
	deps := testDeps{apps: &apprepomock.Repo{
		GetByIDFn: func(ctx context.Context, _ string) (*domain.LoanApplication, error) {
			return &domain.LoanApplication{
				ID:            id,
				BorrowerEmail: "owner@x.com",
				Status:        domain.ApplicationStatusPending,
				FeeStatus:     domain.FeeStatusUnpaid,
			}, nil
		},
	}}
	app, tm := newTestApp(t, deps)

	resp := doRequest(t, app, http.MethodDelete, "/applications/"+id,
		tokenFor(t, tm, "intruder@x.com", domain.RoleBorrower), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestCreatePaymentIntent_Public(t *testing.T) {
	app, _ := newTestApp(t, testDeps{})

	resp := doRequest(t, app, http.MethodPost, "/create-payment-intent", "", map[string]any{"amount": 19.99})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		ClientSecret string `json:"clientSecret"`
	}
	decodeBody(t, resp, &body)
	if body.ClientSecret == "" {
		t.Fatal("expected a client secret")
	}
}

func TestHealthLive(t *testing.T) {
	app, _ := newTestApp(t, testDeps{})

	resp := doRequest(t, app, http.MethodGet, "/health/live", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
