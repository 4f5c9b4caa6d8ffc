package handlers

import (
	"strings"
	"time"

	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/config"
	"bookshelf/internal/core/services"
	"bookshelf/internal/pkg/response"
	"bookshelf/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user, open a session and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if details := validation.Struct(&req); details != nil {
		return response.ValidationFailed(c, details)
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err, "Failed to login")
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)

	return response.Success(c, "Login successful", fiber.Map{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       toUserResponse(result.User),
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the current session and clear the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := middleware.TokenFrom(c); token != "" {
		if err := h.authService.Logout(c.Context(), token); err != nil {
			return respondError(c, err, "Failed to logout")
		}
	}

	h.clearSessionCookie(c)

	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the currently authenticated user's information
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return response.Unauthorized(c, "Login required")
	}

	user, err := h.userService.GetByID(c.Context(), actor.UserID)
	if err != nil {
		return respondError(c, err, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": toUserResponse(user),
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   h.cfg.Session.Hours * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
