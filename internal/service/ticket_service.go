package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
	"github.com/quickdesk/quickdesk/internal/notify"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

// TicketService coordinates ticket creation, status transitions and listing.
type TicketService struct {
	tickets     gateway.TicketGateway
	categories  gateway.CategoryGateway
	sender      notify.Sender
	logger      *zap.Logger
	callTimeout time.Duration
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketGateway   gateway.TicketGateway
	CategoryGateway gateway.CategoryGateway
	Sender          notify.Sender
	Logger          *zap.Logger
	CallTimeout     time.Duration
}

// TicketCreateInput describes the ticket creation payload. Attachment URLs
// reference files already uploaded elsewhere; they are opaque here.
type TicketCreateInput struct {
	Title          string
	Description    string
	CategoryID     string
	Priority       domain.TicketPriority
	AttachmentURLs []string
}

// StatusUpdateResult reports a completed status transition. Warning carries a
// notification failure when the write itself succeeded; it never indicates a
// rolled-back transition.
type StatusUpdateResult struct {
	Ticket  *domain.Ticket
	Warning error
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketGateway,
		categories:  deps.CategoryGateway,
		sender:      deps.Sender,
		logger:      deps.Logger,
		callTimeout: deps.CallTimeout,
	}
}

// CreateTicket creates a ticket for the calling requester. The confirmation
// email is fire-and-forget: a delivery failure is logged and swallowed.
func (s *TicketService) CreateTicket(ctx context.Context, principal *auth.Principal, input TicketCreateInput) (*domain.Ticket, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if description == "" {
		return nil, apperrors.NewValidationError("description is required", nil)
	}
	if input.CategoryID == "" {
		return nil, apperrors.NewValidationError("category_id is required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	readCtx, cancel := callCtx(ctx, s.callTimeout)
	category, err := s.categories.Get(readCtx, input.CategoryID)
	cancel()
	if err != nil {
		return nil, apperrors.NewGatewayError("create_ticket", "category", err)
	}
	if !category.IsActive {
		return nil, apperrors.NewValidationError("category is inactive", map[string]any{"category_id": category.ID})
	}

	attachments := input.AttachmentURLs
	if attachments == nil {
		attachments = []string{}
	}
	fields := gateway.Fields{
		"title":           title,
		"description":     description,
		"status":          domain.TicketStatusOpen,
		"priority":        priority,
		"category_id":     input.CategoryID,
		"requester_email": principal.Email(),
		"assigned_to":     nil,
		"attachment_urls": attachments,
	}

	writeCtx, cancel := callCtx(ctx, s.callTimeout)
	ticket, err := s.tickets.Create(writeCtx, fields)
	cancel()
	if err != nil {
		return nil, apperrors.NewGatewayError("create_ticket", "ticket", err)
	}

	msg := notify.CreationMessage(ticket)
	notifyCtx, cancel := callCtx(ctx, s.callTimeout)
	if err := s.sender.Send(notifyCtx, msg.To, msg.Subject, msg.Body); err != nil {
		s.logger.Warn("ticket creation confirmation failed",
			zap.String("ticket_id", ticket.ID),
			zap.String("recipient", msg.To),
			zap.Error(err))
	}
	cancel()

	return ticket, nil
}

// UpdateStatus applies an admin status transition. Notes are written only
// when non-empty; an empty notes argument never clears stored notes. The
// requester notification failure surfaces as a non-fatal warning.
func (s *TicketService) UpdateStatus(ctx context.Context, principal *auth.Principal, ticketID string, newStatus domain.TicketStatus, notes string) (*StatusUpdateResult, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": newStatus})
	}

	readCtx, cancel := callCtx(ctx, s.callTimeout)
	_, err := s.tickets.Get(readCtx, ticketID)
	cancel()
	if err != nil {
		return nil, apperrors.NewGatewayError("update_status", "ticket", err)
	}

	fields := gateway.Fields{"status": newStatus}
	notes = strings.TrimSpace(notes)
	if notes != "" {
		fields["resolution_notes"] = notes
	}

	writeCtx, cancel := callCtx(ctx, s.callTimeout)
	ticket, err := s.tickets.Update(writeCtx, ticketID, fields)
	cancel()
	if err != nil {
		return nil, apperrors.NewGatewayError("update_status", "ticket", err)
	}

	result := &StatusUpdateResult{Ticket: ticket}
	msg := notify.StatusUpdateMessage(ticket, newStatus, notes)
	notifyCtx, cancel := callCtx(ctx, s.callTimeout)
	if err := s.sender.Send(notifyCtx, msg.To, msg.Subject, msg.Body); err != nil {
		s.logger.Warn("status update notification failed",
			zap.String("ticket_id", ticket.ID),
			zap.String("recipient", msg.To),
			zap.Error(err))
		result.Warning = apperrors.NewNotificationError("update_status", msg.To, err)
	}
	cancel()

	return result, nil
}

// ListTickets returns the caller's visible tickets, filtered in delivered
// order. Role scoping happens at the gateway boundary before any
// caller-supplied filter: non-admins only ever see their own tickets,
// whatever filter values they pass.
func (s *TicketService) ListTickets(ctx context.Context, principal *auth.Principal, query TicketQuery) ([]domain.Ticket, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	readCtx, cancel := callCtx(ctx, s.callTimeout)
	defer cancel()

	var (
		tickets []domain.Ticket
		scope   SearchScope
		err     error
	)
	if principal.IsAdmin() {
		scope = ScopeAdmin
		tickets, err = s.tickets.List(readCtx, gateway.SortLastReplyDesc)
	} else {
		scope = ScopeRequester
		tickets, err = s.tickets.Filter(readCtx, gateway.Fields{"requester_email": principal.Email()}, gateway.SortLastReplyDesc)
	}
	if err != nil {
		return nil, apperrors.NewGatewayError("list_tickets", "ticket", err)
	}

	return ApplyTicketQuery(tickets, query, scope), nil
}
