package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/core/domain"
)

// CatalogService manages the book catalog
type CatalogService struct {
	repos *repositories.Repositories
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos *repositories.Repositories) *CatalogService {
	return &CatalogService{repos: repos}
}

// BookInput represents the editable fields of a book
type BookInput struct {
	Title      string `json:"title" validate:"required,max=255"`
	ISBN       string `json:"isbn" validate:"max=32"`
	Author     string `json:"author" validate:"max=255"`
	Publisher  string `json:"publisher" validate:"max=255"`
	StockCount *int   `json:"stock_count" validate:"required,min=0"`
}

func (in *BookInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.Author = strings.TrimSpace(in.Author)
	in.Publisher = strings.TrimSpace(in.Publisher)
}

func (in *BookInput) stock() (int, error) {
	if in.StockCount == nil {
		return 0, fmt.Errorf("%w: stock count is required", domain.ErrInvalidInput)
	}
	if *in.StockCount < 0 {
		return 0, fmt.Errorf("%w: stock count must not be negative", domain.ErrInvalidInput)
	}
	return *in.StockCount, nil
}

// List returns active books, newest first, optionally filtered by query
func (s *CatalogService) List(ctx context.Context, query string, page, limit int) ([]*domain.Book, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	rows, total, err := s.repos.Books.List(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	books := make([]*domain.Book, len(rows))
	for i, row := range rows {
		books[i] = row.ToDomain()
	}
	return books, total, nil
}

// Get returns an active book
func (s *CatalogService) Get(ctx context.Context, id uint) (*domain.Book, error) {
	row, err := s.repos.Books.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

// Create adds a book to the catalog
func (s *CatalogService) Create(ctx context.Context, actor *domain.Actor, input *BookInput) (*domain.Book, error) {
	if err := domain.Authorize(actor, domain.CapManageCatalog); err != nil {
		return nil, err
	}

	input.normalize()
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.ISBN == "" {
		return nil, fmt.Errorf("%w: isbn is required", domain.ErrInvalidInput)
	}
	stock, err := input.stock()
	if err != nil {
		return nil, err
	}

	row := models.BookFromDomain(&domain.Book{
		Title:      input.Title,
		ISBN:       input.ISBN,
		Author:     input.Author,
		Publisher:  input.Publisher,
		StockCount: stock,
		Status:     domain.BookActive,
	})
	if err := s.repos.Books.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	log.Printf("📚 Book created: #%d %q by %s", row.ID, row.Title, actor.Username)
	return row.ToDomain(), nil
}

// Update replaces the editable fields of an active book
func (s *CatalogService) Update(ctx context.Context, actor *domain.Actor, id uint, input *BookInput) (*domain.Book, error) {
	if err := domain.Authorize(actor, domain.CapManageCatalog); err != nil {
		return nil, err
	}

	input.normalize()
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	stock, err := input.stock()
	if err != nil {
		return nil, err
	}

	var updated *domain.Book
	err = s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		row, err := tx.Books.GetActiveByID(ctx, id)
		if err != nil {
			return err
		}

		row.Title = input.Title
		row.ISBN = input.ISBN
		row.Author = input.Author
		row.Publisher = input.Publisher
		row.StockCount = stock
		if err := tx.Books.Update(ctx, row); err != nil {
			return err
		}

		updated = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📚 Book updated: #%d by %s", id, actor.Username)
	return updated, nil
}

// Delete soft deletes a book. Books with outstanding loans are kept.
//
//	ERROR: ErrBookOnLoan if any copy is still lent out
func (s *CatalogService) Delete(ctx context.Context, actor *domain.Actor, id uint) error {
	if err := domain.Authorize(actor, domain.CapManageCatalog); err != nil {
		return err
	}

	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		if _, err := tx.Books.GetActiveByID(ctx, id); err != nil {
			return err
		}

		active, err := tx.Loans.CountActiveByBook(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrBookOnLoan
		}

		return tx.Books.SoftDelete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("🗑️ Book deleted: #%d by %s", id, actor.Username)
	return nil
}
