package dto

import (
	"time"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// UpdateRoleRequest payload.
type UpdateRoleRequest struct {
	Role domain.UserRole `json:"role"`
}

// UserResponse is the wire shape of a directory entry.
type UserResponse struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	FullName   string          `json:"full_name,omitempty"`
	Role       domain.UserRole `json:"role"`
	Department string          `json:"department,omitempty"`
	LastLogin  *time.Time      `json:"last_login,omitempty"`
}
