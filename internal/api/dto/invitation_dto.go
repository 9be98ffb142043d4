package dto

import (
	"time"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// InviteRequest payload.
type InviteRequest struct {
	Email   string          `json:"email"`
	Role    domain.UserRole `json:"role"`
	Message string          `json:"message"`
}

// InvitationResponse is the wire shape of an invitation. The token hash never
// leaves the service.
type InvitationResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Role        domain.UserRole `json:"role"`
	InvitedBy   string          `json:"invited_by"`
	Message     string          `json:"message,omitempty"`
	ExpiresAt   time.Time       `json:"expires_at"`
	CreatedDate time.Time       `json:"created_date"`
}
