package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

// CategoryService manages the category catalog.
type CategoryService struct {
	categories  gateway.CategoryGateway
	logger      *zap.Logger
	callTimeout time.Duration
}

// CategoryDependencies bundles collaborators.
type CategoryDependencies struct {
	CategoryGateway gateway.CategoryGateway
	Logger          *zap.Logger
	CallTimeout     time.Duration
}

// CategoryInput describes a category create or update payload.
type CategoryInput struct {
	Name  string
	Color string
}

// NewCategoryService constructs the service.
func NewCategoryService(deps CategoryDependencies) *CategoryService {
	return &CategoryService{
		categories:  deps.CategoryGateway,
		logger:      deps.Logger,
		callTimeout: deps.CallTimeout,
	}
}

// ListCategories returns all categories, newest first. When activeOnly is
// set, inactive categories are dropped; historical tickets keep referencing
// them regardless.
func (s *CategoryService) ListCategories(ctx context.Context, principal *auth.Principal, activeOnly bool) ([]domain.Category, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	readCtx, cancel := callCtx(ctx, s.callTimeout)
	defer cancel()

	if activeOnly {
		categories, err := s.categories.Filter(readCtx, gateway.Fields{"is_active": true}, gateway.SortCreatedDateDesc)
		if err != nil {
			return nil, apperrors.NewGatewayError("list_categories", "category", err)
		}
		return categories, nil
	}

	categories, err := s.categories.List(readCtx, gateway.SortCreatedDateDesc)
	if err != nil {
		return nil, apperrors.NewGatewayError("list_categories", "category", err)
	}
	return categories, nil
}

// CreateCategory adds a category. New categories start active.
func (s *CategoryService) CreateCategory(ctx context.Context, principal *auth.Principal, input CategoryInput) (*domain.Category, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}

	fields := gateway.Fields{
		"name":      name,
		"is_active": true,
	}
	if color := strings.TrimSpace(input.Color); color != "" {
		fields["color"] = color
	}

	writeCtx, cancel := callCtx(ctx, s.callTimeout)
	defer cancel()
	category, err := s.categories.Create(writeCtx, fields)
	if err != nil {
		return nil, apperrors.NewGatewayError("create_category", "category", err)
	}
	return category, nil
}

// UpdateCategory renames or recolors a category.
func (s *CategoryService) UpdateCategory(ctx context.Context, principal *auth.Principal, id string, input CategoryInput) (*domain.Category, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}

	fields := gateway.Fields{}
	if name := strings.TrimSpace(input.Name); name != "" {
		fields["name"] = name
	}
	if color := strings.TrimSpace(input.Color); color != "" {
		fields["color"] = color
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("nothing to update", nil)
	}

	writeCtx, cancel := callCtx(ctx, s.callTimeout)
	defer cancel()
	category, err := s.categories.Update(writeCtx, id, fields)
	if err != nil {
		return nil, apperrors.NewGatewayError("update_category", "category", err)
	}
	return category, nil
}

// ToggleCategoryActive flips a category's active flag from its stored value.
// Deactivation does not cascade: existing tickets keep their category and new
// tickets simply cannot pick it.
func (s *CategoryService) ToggleCategoryActive(ctx context.Context, principal *auth.Principal, id string) (*domain.Category, error) {
	if principal == nil || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}

	readCtx, cancel := callCtx(ctx, s.callTimeout)
	current, err := s.categories.Get(readCtx, id)
	cancel()
	if err != nil {
		return nil, apperrors.NewGatewayError("toggle_category", "category", err)
	}

	writeCtx, cancel := callCtx(ctx, s.callTimeout)
	defer cancel()
	category, err := s.categories.Update(writeCtx, id, gateway.Fields{"is_active": !current.IsActive})
	if err != nil {
		return nil, apperrors.NewGatewayError("toggle_category", "category", err)
	}

	s.logger.Info("category active flag toggled",
		zap.String("category_id", id),
		zap.Bool("is_active", category.IsActive))
	return category, nil
}
