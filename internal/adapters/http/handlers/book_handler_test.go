package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"bookshelf/internal/core/domain"
	"bookshelf/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookData struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	ISBN       string `json:"isbn"`
	StockCount int    `json:"stock_count"`
	Available  bool   `json:"available"`
}

func TestListBooks(t *testing.T) {
	a := newTestApp(t)
	testutil.CreateBook(t, a.db, "Dune", 2)
	testutil.CreateBook(t, a.db, "Emma", 0)
	testutil.CreateBook(t, a.db, "Dune Messiah", 1)

	resp, env := a.do(t, http.MethodGet, "/api/v1/books", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(3), env.Meta.Total)

	var books []bookData
	decode(t, env.Data, &books)
	require.Len(t, books, 3)
	assert.Equal(t, "Dune Messiah", books[0].Title)
	assert.False(t, books[1].Available)

	resp, env = a.do(t, http.MethodGet, "/api/v1/books?q=dune&limit=1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), env.Meta.Total)
	decode(t, env.Data, &books)
	assert.Len(t, books, 1)
}

func TestGetBook(t *testing.T) {
	a := newTestApp(t)
	book := testutil.CreateBook(t, a.db, "Dune", 2)

	resp, env := a.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", book.ID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var data bookData
	decode(t, env.Data, &data)
	assert.Equal(t, "978-Dune", data.ISBN)

	resp, _ = a.do(t, http.MethodGet, "/api/v1/books/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = a.do(t, http.MethodGet, "/api/v1/books/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateBook(t *testing.T) {
	a := newTestApp(t)
	testutil.CreateUser(t, a.db, "librarian", domain.RoleAdmin)
	testutil.CreateUser(t, a.db, "alice", domain.RoleMember)
	admin := a.login(t, "librarian")
	member := a.login(t, "alice")

	body := fiber.Map{"title": "Dune", "isbn": "9780441013593", "author": "Frank Herbert", "stock_count": 3}

	resp, _ := a.do(t, http.MethodPost, "/api/v1/books", body, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/api/v1/books", body, member)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := a.do(t, http.MethodPost, "/api/v1/books", body, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)
	var data bookData
	decode(t, env.Data, &data)
	assert.NotZero(t, data.ID)
	assert.Equal(t, 3, data.StockCount)

	resp, env = a.do(t, http.MethodPost, "/api/v1/books", fiber.Map{"isbn": "1", "stock_count": -1}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Details, "title is required")
	assert.Contains(t, env.Details, "stockcount must be at least 0")

	resp, _ = a.do(t, http.MethodPost, "/api/v1/books", fiber.Map{"title": "No ISBN", "stock_count": 1}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateBook(t *testing.T) {
	a := newTestApp(t)
	testutil.CreateUser(t, a.db, "librarian", domain.RoleAdmin)
	admin := a.login(t, "librarian")
	book := testutil.CreateBook(t, a.db, "Dune", 2)

	path := fmt.Sprintf("/api/v1/books/%d", book.ID)
	resp, env := a.do(t, http.MethodPut, path, fiber.Map{"title": "Dune (2nd ed.)", "isbn": "978-2", "stock_count": 5}, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)

	assert.Equal(t, "Dune (2nd ed.)", testutil.ReloadBook(t, a.db, book.ID).Title)
	assert.Equal(t, 5, testutil.ReloadBook(t, a.db, book.ID).StockCount)

	resp, _ = a.do(t, http.MethodPut, "/api/v1/books/9999", fiber.Map{"title": "X", "stock_count": 1}, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteBook(t *testing.T) {
	a := newTestApp(t)
	testutil.CreateUser(t, a.db, "librarian", domain.RoleAdmin)
	alice := testutil.CreateUser(t, a.db, "alice", domain.RoleMember)
	admin := a.login(t, "librarian")
	lent := testutil.CreateBook(t, a.db, "Dune", 1)
	idle := testutil.CreateBook(t, a.db, "Emma", 1)

	now := time.Now().UTC()
	testutil.CreateLoan(t, a.db, alice.ID, lent.ID, now, now.AddDate(0, 0, 14), nil)

	resp, env := a.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", lent.ID), nil, admin)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Book cannot be deleted while copies are on loan", env.Error)

	resp, _ = a.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", idle.ID), nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = a.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", idle.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(domain.BookDeleted), testutil.ReloadBook(t, a.db, idle.ID).Status)
}
