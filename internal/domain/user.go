package domain

import "time"

// UserRole enumerates access levels.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// ValidRole reports whether r is a known role.
func ValidRole(r UserRole) bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

// User is the domain model for people who submit and handle tickets. Email is
// the stable identity key; ticket linkage (requester_email, assigned_to) uses
// it in preference to ID.
type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name,omitempty"`
	Role       UserRole   `json:"role"`
	Department string     `json:"department,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
