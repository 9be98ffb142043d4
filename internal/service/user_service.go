package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

// UserService exposes the user directory and role administration.
type UserService struct {
	users       gateway.UserGateway
	sessions    *auth.SessionCache
	logger      *zap.Logger
	callTimeout time.Duration
}

// UserDependencies bundles collaborators.
type UserDependencies struct {
	UserGateway  gateway.UserGateway
	SessionCache *auth.SessionCache
	Logger       *zap.Logger
	CallTimeout  time.Duration
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:       deps.UserGateway,
		sessions:    deps.SessionCache,
		logger:      deps.Logger,
		callTimeout: deps.CallTimeout,
	}
}

// ListUsers returns the full directory. Admin only; ticket views resolve
// assignee names through this list.
func (s *UserService) ListUsers(ctx context.Context, principal *auth.Principal) ([]domain.User, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}

	readCtx, cancel := callCtx(ctx, s.callTimeout)
	defer cancel()
	users, err := s.users.List(readCtx, "")
	if err != nil {
		return nil, apperrors.NewGatewayError("list_users", "user", err)
	}
	return users, nil
}

// UpdateUserRole changes a user's role and drops their cached session so the
// new role takes effect on their next request.
func (s *UserService) UpdateUserRole(ctx context.Context, principal *auth.Principal, userID string, role domain.UserRole) (*domain.User, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}

	writeCtx, cancel := callCtx(ctx, s.callTimeout)
	defer cancel()
	user, err := s.users.Update(writeCtx, userID, gateway.Fields{"role": role})
	if err != nil {
		return nil, apperrors.NewGatewayError("update_user_role", "user", err)
	}

	s.sessions.Invalidate(ctx, user.Email)
	s.logger.Info("user role updated",
		zap.String("user_id", user.ID),
		zap.String("role", string(role)))
	return user, nil
}
