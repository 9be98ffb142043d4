package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/service"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

// OverviewHandler serves the dashboard snapshot.
type OverviewHandler struct {
	overview *service.OverviewService
}

// NewOverviewHandler constructs handler.
func NewOverviewHandler(overview *service.OverviewService) *OverviewHandler {
	return &OverviewHandler{overview: overview}
}

// Get GET /api/overview.
func (h *OverviewHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	snapshot, err := h.overview.Load(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snapshot})
}
