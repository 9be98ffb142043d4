package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Humanize renders the status for user-facing text ("in_progress" -> "in progress").
func (s TicketStatus) Humanize() string {
	out := []byte(s)
	for i := range out {
		if out[i] == '_' {
			out[i] = ' '
		}
	}
	return string(out)
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. Durable state lives in the
// entity gateway; instances are snapshots and must be re-read before any
// read-modify-write decision.
type Ticket struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Status          TicketStatus   `json:"status"`
	Priority        TicketPriority `json:"priority"`
	CategoryID      string         `json:"category_id"`
	RequesterEmail  string         `json:"requester_email"`
	AssignedTo      *string        `json:"assigned_to,omitempty"`
	ResolutionNotes string         `json:"resolution_notes,omitempty"`
	Upvotes         int            `json:"upvotes"`
	Downvotes       int            `json:"downvotes"`
	AttachmentURLs  []string       `json:"attachment_urls,omitempty"`
	CreatedDate     time.Time      `json:"created_date"`
	LastReply       time.Time      `json:"last_reply"`
}
