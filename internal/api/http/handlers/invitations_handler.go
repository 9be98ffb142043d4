package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/quickdesk/internal/api/dto"
	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/service"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

// InvitationsHandler manages invite endpoints.
type InvitationsHandler struct {
	invitations *service.InvitationService
}

// NewInvitationsHandler constructs handler.
func NewInvitationsHandler(invitations *service.InvitationService) *InvitationsHandler {
	return &InvitationsHandler{invitations: invitations}
}

// Invite POST /api/invitations. When the record was stored but the email
// failed, the response carries both the error and the stranded record.
func (h *InvitationsHandler) Invite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	invitation, err := h.invitations.InviteUser(c.UserContext(), principal, service.InviteInput{
		Email:   req.Email,
		Role:    req.Role,
		Message: req.Message,
	})
	if err != nil {
		if invitation == nil {
			return err
		}
		domainErr := apperrors.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			},
			"data": invitationResponse(invitation),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": invitationResponse(invitation)})
}

// ListInvitations GET /api/invitations. ?email= narrows to one invitee.
func (h *InvitationsHandler) ListInvitations(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	invitations, err := h.invitations.ListInvitations(c.UserContext(), principal, c.Query("email"))
	if err != nil {
		return err
	}
	items := make([]dto.InvitationResponse, 0, len(invitations))
	for i := range invitations {
		items = append(items, invitationResponse(&invitations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func invitationResponse(invitation *domain.Invitation) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:          invitation.ID,
		Email:       invitation.Email,
		Role:        invitation.Role,
		InvitedBy:   invitation.InvitedBy,
		Message:     invitation.Message,
		ExpiresAt:   invitation.ExpiresAt,
		CreatedDate: invitation.CreatedDate,
	}
}
