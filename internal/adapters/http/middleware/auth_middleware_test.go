package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver map[string]*domain.Actor

func (s stubResolver) Resolve(_ context.Context, token string) (*domain.Actor, error) {
	if actor, ok := s[token]; ok {
		return actor, nil
	}
	return nil, domain.ErrUnauthorized
}

func newApp() *fiber.App {
	resolver := stubResolver{
		"good": {UserID: 7, Username: "alice", Role: domain.RoleMember},
	}

	app := fiber.New()
	app.Get("/private", middleware.RequireSession(resolver), func(c *fiber.Ctx) error {
		return c.SendString(middleware.Actor(c).Username)
	})
	app.Get("/token", func(c *fiber.Ctx) error {
		return c.SendString(middleware.TokenFrom(c))
	})
	return app
}

func TestRequireSession(t *testing.T) {
	app := newApp()

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no token", func(r *http.Request) {}, http.StatusUnauthorized},
		{"bad bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") }, http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "good"}) }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestTokenFromPrefersCookie(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", string(body))
}

func TestActorWithoutSession(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Nil(t, middleware.Actor(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
