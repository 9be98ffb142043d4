package dto

import (
	"time"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	CategoryID     string                `json:"category_id"`
	Priority       domain.TicketPriority `json:"priority"`
	AttachmentURLs []string              `json:"attachment_urls"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AssigneeEmail string `json:"assignee_email"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status          domain.TicketStatus `json:"status"`
	ResolutionNotes string              `json:"resolution_notes"`
}

// TicketResponse is the wire shape of a ticket.
type TicketResponse struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Status          domain.TicketStatus   `json:"status"`
	Priority        domain.TicketPriority `json:"priority"`
	CategoryID      string                `json:"category_id"`
	RequesterEmail  string                `json:"requester_email"`
	AssignedTo      *string               `json:"assigned_to"`
	ResolutionNotes string                `json:"resolution_notes,omitempty"`
	Upvotes         int                   `json:"upvotes"`
	Downvotes       int                   `json:"downvotes"`
	AttachmentURLs  []string              `json:"attachment_urls"`
	CreatedDate     time.Time             `json:"created_date"`
	LastReply       time.Time             `json:"last_reply"`
}
