package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/api/http/handlers"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/auth"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Listings       *handlers.ListingsHandler
	Applications   *handlers.ApplicationsHandler
	Payments       *handlers.PaymentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	requireSession := cfg.AuthMiddleware.Handle
	requireAdmin := auth.RequireRole(domain.RoleAdmin)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Users.Register)
	app.Post("/login", cfg.Users.Login)
	app.Get("/users/by-email", cfg.Users.GetByEmail)
	app.Get("/users/me", cfg.Users.Me)
	app.Get("/users", requireSession, requireAdmin, cfg.Users.ListMembers)
	app.Patch("/users/:id", requireSession, requireAdmin, cfg.Users.UpdateRole)

	app.Get("/loans", cfg.Listings.List)
	app.Get("/loans/:id", cfg.Listings.Get)
	app.Post("/loans", requireSession, requireAdmin, cfg.Listings.Create)
	app.Patch("/loans/:id", requireSession, requireAdmin, cfg.Listings.Update)
	app.Delete("/loans/:id", requireSession, requireAdmin, cfg.Listings.Delete)

	app.Post("/apply-loan", requireSession, auth.RequireAuthenticated(), cfg.Applications.Apply)
	app.Get("/applications", requireSession, requireAdmin, cfg.Applications.List)
	app.Get("/applications/borrower/:email", requireSession, cfg.Applications.ListByBorrower)
	app.Get("/applications/:id", requireSession, cfg.Applications.Get)

	app.Patch("/applications/approve/:id", requireSession, requireAdmin, cfg.Applications.Approve)
	app.Patch("/applications/disburse/:id", requireSession, requireAdmin, cfg.Applications.Disburse)
	// two reject routes existed in the legacy client; both stay routable
	app.Patch("/applications/reject/:id", requireSession, requireAdmin, cfg.Applications.Reject)
	app.Patch("/applications/:id/reject", requireSession, requireAdmin, cfg.Applications.Reject)
	app.Patch("/applications/pay/:id", requireSession, cfg.Applications.Pay)
	app.Patch("/applications/repay/:id", requireSession, cfg.Applications.Repay)
	app.Patch("/applications/:id", requireSession, requireAdmin, cfg.Applications.AdminUpdate)
	app.Delete("/applications/:id", requireSession, cfg.Applications.Cancel)

	app.Post("/create-payment-intent", cfg.Payments.CreateIntent)
	app.Post("/payment/admin/send/:applicationId", requireSession, requireAdmin, cfg.Payments.AdminSend)
	app.Post("/payment/user/repay/:id", requireSession, cfg.Payments.UserRepay)
}
