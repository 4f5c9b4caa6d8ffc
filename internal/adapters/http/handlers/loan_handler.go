package handlers

import (
	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/config"
	"bookshelf/internal/core/services"
	"bookshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles borrowing endpoints
type LoanHandler struct {
	loanService *services.LoanService
	cfg         *config.Config
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService, cfg *config.Config) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		cfg:         cfg,
	}
}

// ListMine handles the current user's loans
// @Summary My loans
// @Description Loans of the logged in user, newest first, with overdue flags
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) ListMine(c *fiber.Ctx) error {
	items, err := h.loanService.ListMine(c.Context(), middleware.Actor(c), h.cfg.Now())
	if err != nil {
		return respondError(c, err, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", toLoanItems(items))
}

// Borrow handles borrowing one copy of a book
// @Summary Borrow book
// @Description Lend one copy to the current user. Due in 14 days, moved off weekends.
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param book_id path int true "Book ID"
// @Success 201 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/borrow/{book_id} [post]
func (h *LoanHandler) Borrow(c *fiber.Ctx) error {
	bookID, ok := parseID(c, "book_id")
	if !ok {
		return response.BadRequest(c, "Invalid book ID")
	}

	loan, err := h.loanService.Borrow(c.Context(), middleware.Actor(c), bookID, h.cfg.Now())
	if err != nil {
		return respondError(c, err, "Failed to borrow book")
	}

	return response.Created(c, "Book borrowed successfully", toLoanResponse(loan, false))
}

// Return handles returning a borrowed book
// @Summary Return book
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/return [post]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	loanID, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Return(c.Context(), middleware.Actor(c), loanID, h.cfg.Now())
	if err != nil {
		return respondError(c, err, "Failed to return book")
	}

	return response.Success(c, "Book returned successfully", toLoanResponse(loan, false))
}
