package handlers

import (
	"errors"
	"log"
	"strconv"

	"bookshelf/internal/core/domain"
	"bookshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto the response envelope
func respondError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, credentialsMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Login required")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You do not have permission to do that")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, notFoundMessage(err))
	case errors.Is(err, domain.ErrOutOfStock):
		return response.Conflict(c, "This book is out of stock")
	case errors.Is(err, domain.ErrLoanLimitReached):
		return response.Conflict(c, "You have reached the maximum number of borrowed books")
	case errors.Is(err, domain.ErrIneligible):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrAlreadyReturned):
		return response.Conflict(c, "This book has already been returned")
	case errors.Is(err, domain.ErrBookOnLoan):
		return response.Conflict(c, "Book cannot be deleted while copies are on loan")
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Username already exists")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		return response.InternalServerError(c, fallback)
	}
}

func credentialsMessage(err error) string {
	if errors.Is(err, domain.ErrUnknownUsername) {
		return "Incorrect username"
	}
	return "Incorrect password"
}

func notFoundMessage(err error) string {
	if errors.Is(err, domain.ErrUserNotFound) {
		return "User not found"
	}
	return "Resource not found"
}

// parseID reads a positive numeric route parameter
func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
