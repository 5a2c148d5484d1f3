package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

const principalKey = "auth.principal"

// Principal is the authenticated caller attached to a request.
type Principal struct {
	User *domain.User
}

// UserLoader resolves a user by id for authentication.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Middleware authenticates requests and attaches the caller's principal.
type Middleware struct {
	tokens *TokenManager
	users  UserLoader
}

func NewMiddleware(tokens *TokenManager, users UserLoader) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Authenticate validates the bearer token and loads the caller.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperrors.NewUnauthorized("missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperrors.NewUnauthorized("invalid authorization header")
		}

		claims, err := m.tokens.ParseToken(parts[1])
		if err != nil {
			return apperrors.NewUnauthorized("invalid or expired token")
		}

		user, err := m.users.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			return apperrors.NewUnauthorized("unknown user")
		}
		if !user.IsActive() {
			return apperrors.NewForbidden("account is not active")
		}

		c.Locals(principalKey, &Principal{User: user})
		return c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	p, ok := c.Locals(principalKey).(*Principal)
	return p, ok
}
