package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
	"github.com/quickdesk/quickdesk/internal/notify"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

// InvitationService issues invitations to new users.
type InvitationService struct {
	invitations gateway.InvitationGateway
	sender      notify.Sender
	appURL      string
	logger      *zap.Logger
	callTimeout time.Duration
}

// InvitationDependencies bundles collaborators. AppURL is the address the
// invite email points the invitee at.
type InvitationDependencies struct {
	InvitationGateway gateway.InvitationGateway
	Sender            notify.Sender
	AppURL            string
	Logger            *zap.Logger
	CallTimeout       time.Duration
}

// InviteInput describes an invite request.
type InviteInput struct {
	Email   string
	Role    domain.UserRole
	Message string
}

// NewInvitationService constructs the service.
func NewInvitationService(deps InvitationDependencies) *InvitationService {
	return &InvitationService{
		invitations: deps.InvitationGateway,
		sender:      deps.Sender,
		appURL:      deps.AppURL,
		logger:      deps.Logger,
		callTimeout: deps.CallTimeout,
	}
}

// InviteUser runs the two-phase invite: persist the invitation record, then
// send the email. The phases fail differently. A persist failure means
// nothing was stored and no email went out. An email failure leaves the
// record in place so the operator can see the stranded invite and resend;
// the record is returned alongside the error in that case.
func (s *InvitationService) InviteUser(ctx context.Context, principal *auth.Principal, input InviteInput) (*domain.Invitation, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("a valid email is required", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.UserRoleUser
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}

	token := uuid.NewString()
	tokenHash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	fields := gateway.Fields{
		"email":      email,
		"role":       role,
		"invited_by": principal.Email(),
		"token_hash": string(tokenHash),
		"expires_at": time.Now().UTC().Add(domain.InvitationTTL),
	}
	if msg := strings.TrimSpace(input.Message); msg != "" {
		fields["message"] = msg
	}

	writeCtx, cancel := callCtx(ctx, s.callTimeout)
	invitation, err := s.invitations.Create(writeCtx, fields)
	cancel()
	if err != nil {
		return nil, apperrors.NewInvitationPersistError(email, err)
	}

	inviterName := principal.User.FullName
	if inviterName == "" {
		inviterName = principal.Email()
	}
	msg := notify.InvitationMessage(invitation, inviterName, s.inviteLink(token))

	notifyCtx, cancel := callCtx(ctx, s.callTimeout)
	sendErr := s.sender.Send(notifyCtx, msg.To, msg.Subject, msg.Body)
	cancel()
	if sendErr != nil {
		s.logger.Warn("invitation email failed",
			zap.String("invitation_id", invitation.ID),
			zap.String("email", email),
			zap.Error(sendErr))
		return invitation, apperrors.NewInvitationEmailError(email, sendErr)
	}

	s.logger.Info("invitation sent",
		zap.String("invitation_id", invitation.ID),
		zap.String("email", email),
		zap.String("role", string(role)))
	return invitation, nil
}

// ListInvitations returns invitations for an email, newest first.
func (s *InvitationService) ListInvitations(ctx context.Context, principal *auth.Principal, email string) ([]domain.Invitation, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}

	predicate := gateway.Fields{}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		predicate["email"] = email
	}

	readCtx, cancel := callCtx(ctx, s.callTimeout)
	defer cancel()
	invitations, err := s.invitations.Filter(readCtx, predicate, gateway.SortCreatedDateDesc)
	if err != nil {
		return nil, apperrors.NewGatewayError("list_invitations", "invitation", err)
	}
	return invitations, nil
}

func (s *InvitationService) inviteLink(token string) string {
	base := strings.TrimRight(s.appURL, "/")
	if base == "" {
		return ""
	}
	return base + "/?invite=" + token
}
