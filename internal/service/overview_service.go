package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

// OverviewService assembles the dashboard snapshot.
type OverviewService struct {
	tickets     gateway.TicketGateway
	categories  gateway.CategoryGateway
	users       gateway.UserGateway
	logger      *zap.Logger
	callTimeout time.Duration
}

// OverviewDependencies bundles collaborators.
type OverviewDependencies struct {
	TicketGateway   gateway.TicketGateway
	CategoryGateway gateway.CategoryGateway
	UserGateway     gateway.UserGateway
	Logger          *zap.Logger
	CallTimeout     time.Duration
}

// Overview is a point-in-time dashboard snapshot. Tickets follow the caller's
// role scope; UserCount is populated for admins only.
type Overview struct {
	Tickets        []domain.Ticket       `json:"tickets"`
	Categories     []domain.Category     `json:"categories"`
	StatusCounts   map[string]int        `json:"status_counts"`
	PriorityCounts map[string]int        `json:"priority_counts"`
	TotalTickets   int                   `json:"total_tickets"`
	UnassignedOpen int                   `json:"unassigned_open"`
	UserCount      int                   `json:"user_count,omitempty"`
}

// NewOverviewService constructs the service.
func NewOverviewService(deps OverviewDependencies) *OverviewService {
	return &OverviewService{
		tickets:     deps.TicketGateway,
		categories:  deps.CategoryGateway,
		users:       deps.UserGateway,
		logger:      deps.Logger,
		callTimeout: deps.CallTimeout,
	}
}

// Load fetches tickets, categories and, for admins, the user directory
// concurrently, then derives the counts. Any single load failure fails the
// whole snapshot.
func (s *OverviewService) Load(ctx context.Context, principal *auth.Principal) (*Overview, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	loadCtx, cancel := callCtx(ctx, s.callTimeout)
	defer cancel()

	var (
		tickets    []domain.Ticket
		categories []domain.Category
		users      []domain.User
	)

	g, gCtx := errgroup.WithContext(loadCtx)
	g.Go(func() error {
		var err error
		if principal.IsAdmin() {
			tickets, err = s.tickets.List(gCtx, gateway.SortLastReplyDesc)
		} else {
			tickets, err = s.tickets.Filter(gCtx, gateway.Fields{"requester_email": principal.Email()}, gateway.SortLastReplyDesc)
		}
		if err != nil {
			return apperrors.NewGatewayError("overview", "ticket", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.List(gCtx, gateway.SortCreatedDateDesc)
		if err != nil {
			return apperrors.NewGatewayError("overview", "category", err)
		}
		return nil
	})
	if principal.IsAdmin() {
		g.Go(func() error {
			var err error
			users, err = s.users.List(gCtx, "")
			if err != nil {
				return apperrors.NewGatewayError("overview", "user", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &Overview{
		Tickets:        tickets,
		Categories:     categories,
		StatusCounts:   map[string]int{},
		PriorityCounts: map[string]int{},
		TotalTickets:   len(tickets),
		UserCount:      len(users),
	}
	for i := range tickets {
		t := &tickets[i]
		overview.StatusCounts[string(t.Status)]++
		overview.PriorityCounts[string(t.Priority)]++
		if t.Status == domain.TicketStatusOpen && t.AssignedTo == nil {
			overview.UnassignedOpen++
		}
	}
	return overview, nil
}
