package dto

import (
	"time"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role,omitempty"`
	PhotoURL *string `json:"photoURL,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse mirrors the legacy login payload: profile fields plus token.
type LoginResponse struct {
	Name     string  `json:"name,omitempty"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	PhotoURL *string `json:"photoURL,omitempty"`
	Token    string  `json:"token"`
}

// UpdateUserRoleRequest is the admin patch for accounts.
type UpdateUserRoleRequest struct {
	Role            string `json:"role"`
	SuspendReason   string `json:"suspendReason,omitempty"`
	SuspendFeedback string `json:"suspendFeedback,omitempty"`
}

// UserResponse is the account shape returned to clients. The password hash
// never leaves the server.
type UserResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	PhotoURL        *string   `json:"photoURL,omitempty"`
	SuspendReason   string    `json:"suspendReason,omitempty"`
	SuspendFeedback string    `json:"suspendFeedback,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            string(user.Role),
		PhotoURL:        user.PhotoURL,
		SuspendReason:   user.SuspendReason,
		SuspendFeedback: user.SuspendFeedback,
		CreatedAt:       user.CreatedAt,
	}
}

// NewUserResponses maps a slice of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
