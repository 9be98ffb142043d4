package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/quickdesk/internal/domain"
)

func sampleTickets() []domain.Ticket {
	assignee := "agent@example.com"
	return []domain.Ticket{
		{ID: "t-1", Title: "VPN drops", Description: "drops every hour", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityHigh, CategoryID: "c-net", RequesterEmail: "alice@example.com"},
		{ID: "t-2", Title: "New mouse", Description: "request for hardware", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow, CategoryID: "c-hw", RequesterEmail: "bob@example.com", AssignedTo: &assignee},
		{ID: "t-3", Title: "Email bounce", Description: "mail to VPN vendor bounces", Status: domain.TicketStatusResolved, Priority: domain.TicketPriorityHigh, CategoryID: "c-net", RequesterEmail: "carol@example.com", AssignedTo: &assignee},
	}
}

func ids(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.ID)
	}
	return out
}

func TestApplyTicketQuery_EmptyQueryKeepsEverything(t *testing.T) {
	in := sampleTickets()
	got := ApplyTicketQuery(in, TicketQuery{}, ScopeAdmin)
	assert.Equal(t, ids(in), ids(got))
}

func TestApplyTicketQuery_AllIsNoOp(t *testing.T) {
	in := sampleTickets()
	got := ApplyTicketQuery(in, TicketQuery{
		Status:   "all",
		Category: "all",
		Priority: "all",
		Assigned: "all",
	}, ScopeAdmin)
	assert.Equal(t, ids(in), ids(got))
}

func TestApplyTicketQuery_Conjunctive(t *testing.T) {
	got := ApplyTicketQuery(sampleTickets(), TicketQuery{
		Status:   "open",
		Priority: "high",
	}, ScopeAdmin)
	assert.Equal(t, []string{"t-1"}, ids(got))
}

func TestApplyTicketQuery_AssignedTriState(t *testing.T) {
	in := sampleTickets()

	assigned := ApplyTicketQuery(in, TicketQuery{Assigned: AssignedAssigned}, ScopeAdmin)
	assert.Equal(t, []string{"t-2", "t-3"}, ids(assigned))

	unassigned := ApplyTicketQuery(in, TicketQuery{Assigned: AssignedUnassigned}, ScopeAdmin)
	assert.Equal(t, []string{"t-1"}, ids(unassigned))

	all := ApplyTicketQuery(in, TicketQuery{Assigned: AssignedAll}, ScopeAdmin)
	assert.Equal(t, ids(in), ids(all))
}

func TestApplyTicketQuery_SearchCaseInsensitive(t *testing.T) {
	got := ApplyTicketQuery(sampleTickets(), TicketQuery{Search: "vpn"}, ScopeRequester)
	assert.Equal(t, []string{"t-1", "t-3"}, ids(got))

	got = ApplyTicketQuery(sampleTickets(), TicketQuery{Search: "VPN"}, ScopeRequester)
	assert.Equal(t, []string{"t-1", "t-3"}, ids(got))
}

func TestApplyTicketQuery_SearchScopeControlsRequesterEmail(t *testing.T) {
	adminGot := ApplyTicketQuery(sampleTickets(), TicketQuery{Search: "carol"}, ScopeAdmin)
	assert.Equal(t, []string{"t-3"}, ids(adminGot))

	requesterGot := ApplyTicketQuery(sampleTickets(), TicketQuery{Search: "carol"}, ScopeRequester)
	assert.Empty(t, requesterGot)
}

func TestApplyTicketQuery_OrderPreserved(t *testing.T) {
	got := ApplyTicketQuery(sampleTickets(), TicketQuery{Priority: "high"}, ScopeAdmin)
	assert.Equal(t, []string{"t-1", "t-3"}, ids(got))
}

func TestApplyTicketQuery_Idempotent(t *testing.T) {
	query := TicketQuery{Status: "open", Search: "vpn"}
	once := ApplyTicketQuery(sampleTickets(), query, ScopeAdmin)
	twice := ApplyTicketQuery(once, query, ScopeAdmin)
	require.Equal(t, ids(once), ids(twice))
}

func TestApplyTicketQuery_NoMatches(t *testing.T) {
	got := ApplyTicketQuery(sampleTickets(), TicketQuery{Status: "closed"}, ScopeAdmin)
	assert.Empty(t, got)
}
