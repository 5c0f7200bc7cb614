package identity

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// UserStatus represents the lifecycle state of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// IsValid checks if the status is a known value
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive:
		return true
	}
	return false
}

// UserRole represents the role of a user within the store
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleCashier  UserRole = "CASHIER"
	RoleCustomer UserRole = "CUSTOMER"
)

// IsValid checks if the role is a known value
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleCustomer:
		return true
	}
	return false
}

// User is the identity aggregate. Orders and payments reference users
// as customer and cashier respectively.
type User struct {
	shared.BaseEntity
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Phone  string     `json:"phone"`
	Role   UserRole   `json:"role"`
	Status UserStatus `json:"status"`
}

// NewUser creates a new active user
func NewUser(name, email string, role UserRole) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "user name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid email address")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid user role")
	}
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Role:       role,
		Status:     UserStatusActive,
	}, nil
}

// IsActive reports whether the user can participate in new transactions
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Deactivate marks the user inactive. Inactive users keep their history
// but cannot place or process new orders.
func (u *User) Deactivate() {
	u.Status = UserStatusInactive
}

// Activate re-enables a deactivated user
func (u *User) Activate() {
	u.Status = UserStatusActive
}
