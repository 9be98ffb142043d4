package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
	apperrors "github.com/quickdesk/quickdesk/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Every engine operation takes
// it explicitly; there is no ambient current-user state.
type Principal struct {
	User *domain.User
}

// IsAdmin reports whether the caller holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.User.IsAdmin()
}

// Email returns the caller's identity key.
func (p *Principal) Email() string {
	if p == nil || p.User == nil {
		return ""
	}
	return p.User.Email
}

// Middleware validates bearer tokens and resolves the caller through the
// session cache and the user gateway.
type Middleware struct {
	tokens *TokenManager
	users  gateway.UserGateway
	cache  *SessionCache
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users gateway.UserGateway, cache *SessionCache) *Middleware {
	return &Middleware{tokens: tokens, users: users, cache: cache}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	if user, ok := m.cache.Get(c.Context(), claims.Email); ok {
		c.Locals(principalKey, &Principal{User: user})
		return c.Next()
	}

	matches, err := m.users.Filter(c.Context(), gateway.Fields{"email": claims.Email}, "")
	if err != nil {
		return apperrors.MapError(err)
	}
	if len(matches) == 0 {
		return apperrors.NewUnauthorized("user not found")
	}

	user := matches[0]
	m.cache.Set(c.Context(), &user)
	c.Locals(principalKey, &Principal{User: &user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
