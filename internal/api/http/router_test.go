package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/api/http/handlers"
	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
	"github.com/quickdesk/quickdesk/internal/notify"
	"github.com/quickdesk/quickdesk/internal/observability"
	"github.com/quickdesk/quickdesk/internal/service"
)

type memTickets struct {
	tickets []domain.Ticket
}

func (m *memTickets) List(_ context.Context, _ string) ([]domain.Ticket, error) {
	return append([]domain.Ticket(nil), m.tickets...), nil
}

func (m *memTickets) Filter(_ context.Context, predicate gateway.Fields, _ string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range m.tickets {
		if email, ok := predicate["requester_email"]; ok && t.RequesterEmail != email {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memTickets) Get(_ context.Context, id string) (*domain.Ticket, error) {
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			t := m.tickets[i]
			return &t, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memTickets) Create(_ context.Context, fields gateway.Fields) (*domain.Ticket, error) {
	t := domain.Ticket{ID: "t-new", CreatedDate: time.Now(), LastReply: time.Now()}
	if title, ok := fields["title"].(string); ok {
		t.Title = title
	}
	if status, ok := fields["status"].(domain.TicketStatus); ok {
		t.Status = status
	}
	if priority, ok := fields["priority"].(domain.TicketPriority); ok {
		t.Priority = priority
	}
	if email, ok := fields["requester_email"].(string); ok {
		t.RequesterEmail = email
	}
	m.tickets = append(m.tickets, t)
	return &t, nil
}

func (m *memTickets) Update(_ context.Context, id string, fields gateway.Fields) (*domain.Ticket, error) {
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			if status, ok := fields["status"].(domain.TicketStatus); ok {
				m.tickets[i].Status = status
			}
			if assignee, ok := fields["assigned_to"].(string); ok {
				m.tickets[i].AssignedTo = &assignee
			}
			t := m.tickets[i]
			return &t, nil
		}
	}
	return nil, errors.New("not found")
}

type memUsers struct {
	users []domain.User
}

func (m *memUsers) List(_ context.Context, _ string) ([]domain.User, error) {
	return append([]domain.User(nil), m.users...), nil
}

func (m *memUsers) Filter(_ context.Context, predicate gateway.Fields, _ string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if email, ok := predicate["email"]; ok && u.Email != email {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Get(_ context.Context, _ string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (m *memUsers) Update(_ context.Context, _ string, _ gateway.Fields) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

type memCategories struct {
	categories []domain.Category
}

func (m *memCategories) List(_ context.Context, _ string) ([]domain.Category, error) {
	return append([]domain.Category(nil), m.categories...), nil
}

func (m *memCategories) Filter(_ context.Context, _ gateway.Fields, _ string) ([]domain.Category, error) {
	return append([]domain.Category(nil), m.categories...), nil
}

func (m *memCategories) Get(_ context.Context, id string) (*domain.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			c := m.categories[i]
			return &c, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memCategories) Create(_ context.Context, _ gateway.Fields) (*domain.Category, error) {
	return nil, errors.New("not implemented")
}

func (m *memCategories) Update(_ context.Context, _ string, _ gateway.Fields) (*domain.Category, error) {
	return nil, errors.New("not implemented")
}

type memInvitations struct{}

func (m *memInvitations) Create(_ context.Context, _ gateway.Fields) (*domain.Invitation, error) {
	return &domain.Invitation{ID: "inv-1"}, nil
}

func (m *memInvitations) Filter(_ context.Context, _ gateway.Fields, _ string) ([]domain.Invitation, error) {
	return nil, nil
}

type flakySender struct {
	fail bool
}

var _ notify.Sender = (*flakySender)(nil)

func (f *flakySender) Send(_ context.Context, _, _, _ string) error {
	if f.fail {
		return errors.New("mail api down")
	}
	return nil
}

type testEnv struct {
	app     *fiber.App
	tokens  *auth.TokenManager
	tickets *memTickets
	sender  *flakySender
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()

	tickets := &memTickets{tickets: []domain.Ticket{{
		ID:             "t-1",
		Title:          "VPN drops",
		Status:         domain.TicketStatusOpen,
		Priority:       domain.TicketPriorityHigh,
		CategoryID:     "c-1",
		RequesterEmail: "alice@example.com",
	}}}
	users := &memUsers{users: []domain.User{
		{ID: "u-1", Email: "alice@example.com", Role: domain.UserRoleUser},
		{ID: "u-2", Email: "admin@example.com", Role: domain.UserRoleAdmin},
		{ID: "u-3", Email: "agent@example.com", Role: domain.UserRoleAdmin},
	}}
	categories := &memCategories{categories: []domain.Category{{ID: "c-1", Name: "Network", IsActive: true}}}
	sender := &flakySender{}
	logger := zap.NewNop()

	tokens := auth.NewTokenManager("test-secret")
	mw := auth.NewMiddleware(tokens, users, auth.NewSessionCache(nil, 0))

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketGateway:   tickets,
		CategoryGateway: categories,
		Sender:          sender,
		Logger:          logger,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketGateway: tickets,
		UserGateway:   users,
		Sender:        sender,
		Logger:        logger,
	})
	categoryService := service.NewCategoryService(service.CategoryDependencies{
		CategoryGateway: categories,
		Logger:          logger,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserGateway: users,
		Logger:      logger,
	})
	invitationService := service.NewInvitationService(service.InvitationDependencies{
		InvitationGateway: &memInvitations{},
		Sender:            sender,
		AppURL:            "https://desk.example.com",
		Logger:            logger,
	})
	overviewService := service.NewOverviewService(service.OverviewDependencies{
		TicketGateway:   tickets,
		CategoryGateway: categories,
		UserGateway:     users,
		Logger:          logger,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("quickdesk", "test", nil),
		Tickets:        handlers.NewTicketsHandler(ticketService, assignmentService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Users:          handlers.NewUsersHandler(userService),
		Invitations:    handlers.NewInvitationsHandler(invitationService),
		Overview:       handlers.NewOverviewHandler(overviewService),
		AuthMiddleware: mw,
	})

	return &testEnv{app: app, tokens: tokens, tickets: tickets, sender: sender}
}

func authedRequest(t *testing.T, env *testEnv, method, path, email string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		token, err := env.tokens.IssueToken(email, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestAPI_HealthLive(t *testing.T) {
	env := setupAPI(t)

	status, body := authedRequest(t, env, "GET", "/health/live", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alive", body["status"])
}

func TestAPI_RequiresAuth(t *testing.T) {
	env := setupAPI(t)

	status, body := authedRequest(t, env, "GET", "/api/tickets", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestAPI_CreateAndListTickets(t *testing.T) {
	env := setupAPI(t)

	status, body := authedRequest(t, env, "POST", "/api/tickets", "alice@example.com", map[string]any{
		"title":       "Laptop broken",
		"description": "Won't turn on",
		"category_id": "c-1",
	})
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "open", data["status"])
	assert.Equal(t, "medium", data["priority"])

	status, body = authedRequest(t, env, "GET", "/api/tickets", "alice@example.com", nil)
	require.Equal(t, fiber.StatusOK, status)
	items := body["data"].([]any)
	assert.Len(t, items, 2)
}

func TestAPI_AssignRequiresAdmin(t *testing.T) {
	env := setupAPI(t)

	status, body := authedRequest(t, env, "POST", "/api/tickets/t-1/assign", "alice@example.com", map[string]any{
		"assignee_email": "agent@example.com",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "FORBIDDEN", errObj["code"])
}

func TestAPI_AssignReturnsWarningOnMailFailure(t *testing.T) {
	env := setupAPI(t)
	env.sender.fail = true

	status, body := authedRequest(t, env, "POST", "/api/tickets/t-1/assign", "admin@example.com", map[string]any{
		"assignee_email": "agent@example.com",
	})
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, "in_progress", data["status"])
	assert.Equal(t, "agent@example.com", data["assigned_to"])

	warning := body["warning"].(map[string]any)
	assert.Equal(t, "NOTIFICATION_FAILED", warning["code"])
}

func TestAPI_UpdateStatus(t *testing.T) {
	env := setupAPI(t)

	status, body := authedRequest(t, env, "POST", "/api/tickets/t-1/status", "admin@example.com", map[string]any{
		"status": "resolved",
	})
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "resolved", data["status"])
	assert.Nil(t, body["warning"])
}

func TestAPI_UsersEndpointIsAdminOnly(t *testing.T) {
	env := setupAPI(t)

	status, _ := authedRequest(t, env, "GET", "/api/users", "alice@example.com", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := authedRequest(t, env, "GET", "/api/users", "admin@example.com", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"].([]any), 3)
}

func TestAPI_Overview(t *testing.T) {
	env := setupAPI(t)

	status, body := authedRequest(t, env, "GET", "/api/overview", "admin@example.com", nil)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["total_tickets"])
}
