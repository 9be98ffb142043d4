package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

type stubUserGateway struct {
	users       []domain.User
	filterCalls int
	filterErr   error
}

func (s *stubUserGateway) List(_ context.Context, _ string) ([]domain.User, error) {
	return s.users, nil
}

func (s *stubUserGateway) Filter(_ context.Context, predicate gateway.Fields, _ string) ([]domain.User, error) {
	s.filterCalls++
	if s.filterErr != nil {
		return nil, s.filterErr
	}
	var out []domain.User
	for _, u := range s.users {
		if email, ok := predicate["email"]; ok && u.Email != email {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUserGateway) Get(_ context.Context, _ string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserGateway) Update(_ context.Context, _ string, _ gateway.Fields) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func setupAuthTest(t *testing.T) (*fiber.App, *TokenManager, *stubUserGateway, *SessionCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewSessionCache(client, time.Minute)

	tokens := NewTokenManager("test-secret")
	users := &stubUserGateway{users: []domain.User{
		{ID: "u-1", Email: "alice@example.com", Role: domain.UserRoleUser},
		{ID: "u-2", Email: "admin@example.com", Role: domain.UserRoleAdmin},
	}}

	mw := NewMiddleware(tokens, users, cache)
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		domainErr := apperrors.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
	}})
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"email": principal.Email(), "admin": principal.IsAdmin()})
	})
	app.Get("/admin", mw.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, tokens, users, cache
}

func TestMiddleware_MissingHeader(t *testing.T) {
	app, _, _, _ := setupAuthTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_BadToken(t *testing.T) {
	app, _, _, _ := setupAuthTest(t)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_ResolvesAndCachesUser(t *testing.T) {
	app, tokens, users, cache := setupAuthTest(t)

	token, err := tokens.IssueToken("alice@example.com", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, users.filterCalls)

	cached, ok := cache.Get(context.Background(), "alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "u-1", cached.ID)

	// second request is served from the cache
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, users.filterCalls)
}

func TestMiddleware_UnknownUser(t *testing.T) {
	app, tokens, _, _ := setupAuthTest(t)

	token, err := tokens.IssueToken("ghost@example.com", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	app, tokens, _, _ := setupAuthTest(t)

	token, err := tokens.IssueToken("alice@example.com", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app, tokens, _, _ := setupAuthTest(t)

	userToken, err := tokens.IssueToken("alice@example.com", time.Hour)
	require.NoError(t, err)
	adminToken, err := tokens.IssueToken("admin@example.com", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionCache_Invalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewSessionCache(client, time.Minute)

	user := &domain.User{ID: "u-1", Email: "alice@example.com", Role: domain.UserRoleUser}
	cache.Set(context.Background(), user)

	got, ok := cache.Get(context.Background(), "alice@example.com")
	require.True(t, ok)
	assert.Equal(t, domain.UserRoleUser, got.Role)

	cache.Invalidate(context.Background(), "alice@example.com")
	_, ok = cache.Get(context.Background(), "alice@example.com")
	assert.False(t, ok)
}
