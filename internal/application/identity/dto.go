package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/identity"
)

// CreateUserRequest is the input for registering a user
type CreateUserRequest struct {
	Name  string            `json:"name"`
	Email string            `json:"email"`
	Phone string            `json:"phone,omitempty"`
	Role  identity.UserRole `json:"role"`
}

// UserResponse is the representation of a user returned to callers
type UserResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Phone     string              `json:"phone,omitempty"`
	Role      identity.UserRole   `json:"role"`
	Status    identity.UserStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

// ToUserResponse maps a user to a response
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}
