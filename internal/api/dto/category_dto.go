package dto

import "time"

// CategoryRequest payload, used for both create and update.
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryResponse is the wire shape of a category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedDate time.Time `json:"created_date"`
}
