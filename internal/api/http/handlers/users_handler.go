package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/api/dto"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/auth"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/events"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/service"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

// UsersHandler exposes registration, login and account administration.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Register handles POST /register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"userId": user.ID})
}

// Login handles POST /login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	resp := dto.LoginResponse{
		Email: result.Email,
		Role:  string(result.Role),
		Token: result.Token,
	}
	if result.User != nil {
		resp.Name = result.User.Name
		resp.PhotoURL = result.User.PhotoURL
	}
	return c.JSON(resp)
}

// GetByEmail handles GET /users/by-email?email=. The legacy client expects a
// one-element array.
func (h *UsersHandler) GetByEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	user, err := h.users.GetByEmail(c.Context(), email)
	if err != nil {
		return err
	}
	return c.JSON([]dto.UserResponse{dto.NewUserResponse(user)})
}

// ListMembers handles GET /users (admin): borrower and manager accounts only.
func (h *UsersHandler) ListMembers(c *fiber.Ctx) error {
	users, err := h.users.ListMembers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Me handles GET /users/me: the manager profile shown on the public site.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.GetManagerProfile(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateRole handles PATCH /users/:id (admin).
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	var req dto.UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.UpdateRole(c.Context(), actorFromContext(c), c.Params("id"),
		domain.Role(req.Role), req.SuspendReason, req.SuspendFeedback)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

func actorFromContext(c *fiber.Ctx) events.Actor {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return events.Actor{}
	}
	return events.Actor{Email: principal.Email, Role: principal.Role}
}
