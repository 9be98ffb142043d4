package service

import (
	"strings"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// FilterAll is the no-op value for every categorical filter.
const FilterAll = "all"

// Assigned filter states.
const (
	AssignedAll        = "all"
	AssignedAssigned   = "assigned"
	AssignedUnassigned = "unassigned"
)

// TicketQuery is a conjunctive filter set plus a free-text search. Zero
// values act as "all". There is no OR/NOT support.
type TicketQuery struct {
	Search   string
	Status   string
	Category string
	Priority string
	Assigned string
}

// SearchScope controls which fields the free-text search matches.
type SearchScope int

const (
	// ScopeRequester matches title and description only.
	ScopeRequester SearchScope = iota
	// ScopeAdmin additionally matches the requester email.
	ScopeAdmin
)

// ApplyTicketQuery filters tickets in delivered order. Output order is always
// a subsequence of input order; the gateway's sort is never disturbed.
func ApplyTicketQuery(tickets []domain.Ticket, query TicketQuery, scope SearchScope) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		if matchesQuery(&tickets[i], query, scope) {
			out = append(out, tickets[i])
		}
	}
	return out
}

func matchesQuery(ticket *domain.Ticket, query TicketQuery, scope SearchScope) bool {
	if !matchesSearch(ticket, query.Search, scope) {
		return false
	}
	if !categorical(query.Status, string(ticket.Status)) {
		return false
	}
	if !categorical(query.Category, ticket.CategoryID) {
		return false
	}
	if !categorical(query.Priority, string(ticket.Priority)) {
		return false
	}
	switch query.Assigned {
	case AssignedAssigned:
		return ticket.AssignedTo != nil
	case AssignedUnassigned:
		return ticket.AssignedTo == nil
	}
	return true
}

func matchesSearch(ticket *domain.Ticket, search string, scope SearchScope) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(ticket.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(ticket.Description), search) {
		return true
	}
	if scope == ScopeAdmin && strings.Contains(strings.ToLower(ticket.RequesterEmail), search) {
		return true
	}
	return false
}

func categorical(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}
