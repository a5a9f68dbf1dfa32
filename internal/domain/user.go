package domain

import (
	"strings"
	"time"
)

// Role enumerates account roles. Suspension is modeled as a role so a single
// field drives both authorization and account lockout.
type Role string

const (
	RoleBorrower  Role = "borrower"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
	RoleSuspended Role = "suspended"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleBorrower, RoleManager, RoleAdmin, RoleSuspended:
		return true
	}
	return false
}

// User is the domain model for marketplace accounts.
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Role            Role
	PhotoURL        *string
	SuspendReason   string
	SuspendFeedback string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Suspended reports whether the account is locked out. The check is
// case-insensitive because legacy records carried mixed-case role values.
func (u *User) Suspended() bool {
	return strings.EqualFold(string(u.Role), string(RoleSuspended))
}
