package handlers

import (
	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/core/services"
	"bookshelf/internal/pkg/pagination"
	"bookshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing all users (admin only)
// @Summary List users
// @Description List all accounts with pagination (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.List(c.Context(), middleware.Actor(c), params.Page, params.Limit)
	if err != nil {
		return respondError(c, err, "Failed to list users")
	}

	data := make([]UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, toUserResponse(u))
	}

	return response.Paginated(c, "Users retrieved successfully", data, params, total)
}
