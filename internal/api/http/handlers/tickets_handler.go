package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/quickdesk/internal/api/dto"
	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/service"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	tickets     *service.TicketService
	assignments *service.AssignmentService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, assignments *service.AssignmentService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, assignments: assignments}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		Title:          req.Title,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		Priority:       req.Priority,
		AttachmentURLs: req.AttachmentURLs,
	}
	ticket, err := h.tickets.CreateTicket(c.UserContext(), principal, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	query := service.TicketQuery{
		Search:   c.Query("q"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Assigned: c.Query("assigned"),
	}
	tickets, err := h.tickets.ListTickets(c.UserContext(), principal, query)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AssignTicket POST /api/tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.assignments.Assign(c.UserContext(), principal, c.Params("id"), req.AssigneeEmail)
	if err != nil {
		return err
	}
	return c.JSON(withWarning(fiber.Map{"data": ticketResponse(result.Ticket)}, result.Warning))
}

// UpdateStatus POST /api/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.tickets.UpdateStatus(c.UserContext(), principal, c.Params("id"), req.Status, req.ResolutionNotes)
	if err != nil {
		return err
	}
	return c.JSON(withWarning(fiber.Map{"data": ticketResponse(result.Ticket)}, result.Warning))
}

// withWarning attaches a non-fatal notification failure to a success payload.
func withWarning(body fiber.Map, warning error) fiber.Map {
	if warning == nil {
		return body
	}
	domainErr := apperrors.ToDomainError(warning)
	body["warning"] = fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	return body
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:              ticket.ID,
		Title:           ticket.Title,
		Description:     ticket.Description,
		Status:          ticket.Status,
		Priority:        ticket.Priority,
		CategoryID:      ticket.CategoryID,
		RequesterEmail:  ticket.RequesterEmail,
		AssignedTo:      ticket.AssignedTo,
		ResolutionNotes: ticket.ResolutionNotes,
		Upvotes:         ticket.Upvotes,
		Downvotes:       ticket.Downvotes,
		AttachmentURLs:  ticket.AttachmentURLs,
		CreatedDate:     ticket.CreatedDate,
		LastReply:       ticket.LastReply,
	}
}
