package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/quickdesk/internal/api/http/handlers"
	"github.com/quickdesk/quickdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Categories     *handlers.CategoriesHandler
	Users          *handlers.UsersHandler
	Invitations    *handlers.InvitationsHandler
	Overview       *handlers.OverviewHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Post("/tickets/:id/assign", auth.RequireAdmin(), cfg.Tickets.AssignTicket)
	api.Post("/tickets/:id/status", auth.RequireAdmin(), cfg.Tickets.UpdateStatus)

	api.Get("/categories", cfg.Categories.ListCategories)
	api.Post("/categories", auth.RequireAdmin(), cfg.Categories.CreateCategory)
	api.Patch("/categories/:id", auth.RequireAdmin(), cfg.Categories.UpdateCategory)
	api.Post("/categories/:id/toggle", auth.RequireAdmin(), cfg.Categories.ToggleCategory)

	api.Get("/users", auth.RequireAdmin(), cfg.Users.ListUsers)
	api.Patch("/users/:id/role", auth.RequireAdmin(), cfg.Users.UpdateRole)

	api.Get("/invitations", auth.RequireAdmin(), cfg.Invitations.ListInvitations)
	api.Post("/invitations", auth.RequireAdmin(), cfg.Invitations.Invite)

	api.Get("/overview", cfg.Overview.Get)
}
