package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
	"github.com/quickdesk/quickdesk/internal/notify"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

// AssignmentService handles ticket assignment.
type AssignmentService struct {
	tickets     gateway.TicketGateway
	users       gateway.UserGateway
	sender      notify.Sender
	logger      *zap.Logger
	callTimeout time.Duration
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	TicketGateway gateway.TicketGateway
	UserGateway   gateway.UserGateway
	Sender        notify.Sender
	Logger        *zap.Logger
	CallTimeout   time.Duration
}

// AssignResult reports a completed assignment. Warning carries a
// notification failure when the write succeeded.
type AssignResult struct {
	Ticket  *domain.Ticket
	Warning error
}

// NewAssignmentService constructs the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:     deps.TicketGateway,
		users:       deps.UserGateway,
		sender:      deps.Sender,
		logger:      deps.Logger,
		callTimeout: deps.CallTimeout,
	}
}

// Assign writes assigned_to and forces status to in_progress, whatever the
// ticket's prior status. Assigning a resolved or closed ticket reopens it.
// The assignee notification is awaited after the write; its failure becomes
// a warning on the result and never rolls the assignment back.
func (s *AssignmentService) Assign(ctx context.Context, principal *auth.Principal, ticketID, assigneeEmail string) (*AssignResult, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if assigneeEmail == "" {
		return nil, apperrors.NewValidationError("assignee email is required", nil)
	}

	lookupCtx, cancel := callCtx(ctx, s.callTimeout)
	matches, err := s.users.Filter(lookupCtx, gateway.Fields{"email": assigneeEmail}, "")
	cancel()
	if err != nil {
		return nil, apperrors.NewGatewayError("assign_ticket", "user", err)
	}
	if len(matches) == 0 {
		return nil, apperrors.NewNotFound("assignee", map[string]any{"email": assigneeEmail})
	}
	if matches[0].Role != domain.UserRoleAdmin {
		return nil, apperrors.NewValidationError("assignee must be an administrator", map[string]any{"email": assigneeEmail})
	}

	// Re-read the stored ticket rather than trusting any caller snapshot.
	readCtx, cancel := callCtx(ctx, s.callTimeout)
	_, err = s.tickets.Get(readCtx, ticketID)
	cancel()
	if err != nil {
		return nil, apperrors.NewGatewayError("assign_ticket", "ticket", err)
	}

	writeCtx, cancel := callCtx(ctx, s.callTimeout)
	ticket, err := s.tickets.Update(writeCtx, ticketID, gateway.Fields{
		"assigned_to": assigneeEmail,
		"status":      domain.TicketStatusInProgress,
	})
	cancel()
	if err != nil {
		return nil, apperrors.NewGatewayError("assign_ticket", "ticket", err)
	}

	result := &AssignResult{Ticket: ticket}
	msg := notify.AssignmentMessage(ticket, assigneeEmail)
	notifyCtx, cancel := callCtx(ctx, s.callTimeout)
	if err := s.sender.Send(notifyCtx, msg.To, msg.Subject, msg.Body); err != nil {
		s.logger.Warn("assignment notification failed",
			zap.String("ticket_id", ticket.ID),
			zap.String("recipient", assigneeEmail),
			zap.Error(err))
		result.Warning = apperrors.NewNotificationError("assign_ticket", assigneeEmail, err)
	}
	cancel()

	return result, nil
}
