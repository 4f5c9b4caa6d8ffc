package middleware

import (
	"context"
	"errors"
	"strings"

	"bookshelf/internal/core/domain"
	"bookshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the session token
const SessionCookie = "session"

const actorKey = "actor"

// SessionResolver turns a session token into the acting identity
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Actor, error)
}

// TokenFrom reads the session token from the cookie, falling back to a
// bearer Authorization header.
func TokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// RequireSession rejects requests without a valid session and stores the
// resolved actor for the handler.
func RequireSession(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFrom(c)
		if token == "" {
			return response.Unauthorized(c, "Login required")
		}

		actor, err := resolver.Resolve(c.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return response.Unauthorized(c, "Session expired or invalid, please log in again")
			}
			return err
		}

		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// Actor returns the actor resolved for this request, or nil
func Actor(c *fiber.Ctx) *domain.Actor {
	actor, _ := c.Locals(actorKey).(*domain.Actor)
	return actor
}
