package domain

import "time"

// Category groups tickets for triage. Inactive categories stay referenced by
// historical tickets but are excluded from creation-time choices.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedDate time.Time `json:"created_date"`
}
