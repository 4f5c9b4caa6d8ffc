package handlers

import (
	"strings"

	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/core/services"
	"bookshelf/internal/pkg/pagination"
	"bookshelf/internal/pkg/response"
	"bookshelf/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	catalogService *services.CatalogService
}

// NewBookHandler creates a new book handler
func NewBookHandler(catalogService *services.CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService}
}

// List handles catalog listing and search
// @Summary List books
// @Description List active books, newest first. q matches title, author, publisher or ISBN.
// @Tags Books
// @Produce json
// @Param q query string false "Search text"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	query := strings.TrimSpace(c.Query("q"))

	books, total, err := h.catalogService.List(c.Context(), query, params.Page, params.Limit)
	if err != nil {
		return respondError(c, err, "Failed to list books")
	}

	data := make([]BookResponse, 0, len(books))
	for _, b := range books {
		data = append(data, toBookResponse(b))
	}

	return response.Paginated(c, "Books retrieved successfully", data, params, total)
}

// Get handles a single book
// @Summary Get book
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.catalogService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", toBookResponse(book))
}

// Create handles adding a book
// @Summary Create book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BookInput true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	if err := domain.Authorize(actor, domain.CapManageCatalog); err != nil {
		return respondError(c, err, "Failed to create book")
	}

	input, err := h.parseInput(c)
	if input == nil {
		return err
	}

	book, err := h.catalogService.Create(c.Context(), actor, input)
	if err != nil {
		return respondError(c, err, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", toBookResponse(book))
}

// Update handles editing a book
// @Summary Update book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body services.BookInput true "Book data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	if err := domain.Authorize(actor, domain.CapManageCatalog); err != nil {
		return respondError(c, err, "Failed to update book")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid book ID")
	}

	input, err := h.parseInput(c)
	if input == nil {
		return err
	}

	book, err := h.catalogService.Update(c.Context(), actor, id, input)
	if err != nil {
		return respondError(c, err, "Failed to update book")
	}

	return response.Success(c, "Book updated successfully", toBookResponse(book))
}

// Delete handles removing a book from the catalog
// @Summary Delete book
// @Description Soft delete. Refused while copies are on loan.
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid book ID")
	}

	if err := h.catalogService.Delete(c.Context(), middleware.Actor(c), id); err != nil {
		return respondError(c, err, "Failed to delete book")
	}

	return response.Success(c, "Book deleted successfully", nil)
}

// parseInput decodes and validates the body. A nil input means the
// error response has been written.
func (h *BookHandler) parseInput(c *fiber.Ctx) (*services.BookInput, error) {
	var input services.BookInput
	if err := c.BodyParser(&input); err != nil {
		return nil, response.BadRequest(c, "Invalid request body")
	}
	if details := validation.Struct(&input); details != nil {
		return nil, response.ValidationFailed(c, details)
	}
	return &input, nil
}
