package domain

import "time"

// InvitationTTL is the fixed validity window for invitations.
const InvitationTTL = 7 * 24 * time.Hour

// Invitation records a single invite action. Acceptance is handled by the
// external identity provider; this service only creates the record and sends
// the email. TokenHash is a bcrypt hash of the invite token embedded in the
// email link; the raw token is never persisted.
type Invitation struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        UserRole  `json:"role"`
	InvitedBy   string    `json:"invited_by"`
	Message     string    `json:"message,omitempty"`
	TokenHash   string    `json:"token_hash,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedDate time.Time `json:"created_date"`
}
