package repositories

import (
	"context"
	"errors"
	"strings"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/core/domain"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Book{}).Where("status = ?", string(domain.BookActive))
}

// List lists active books, newest first, optionally filtered by a substring
// of title, ISBN or author.
func (r *bookRepository) List(ctx context.Context, query string, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	q := r.active(ctx)
	if query = strings.TrimSpace(query); query != "" {
		term := "%" + escapeLike(query) + "%"
		q = q.Where("(title LIKE ? ESCAPE '!' OR isbn LIKE ? ESCAPE '!' OR author LIKE ? ESCAPE '!')", term, term, term)
	}
	q = q.Session(&gorm.Session{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// GetActiveByID gets an active book by ID
func (r *bookRepository) GetActiveByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.active(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update overwrites the editable fields of an active book
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	result := r.active(ctx).
		Where("id = ?", book.ID).
		Select("title", "isbn", "author", "publisher", "stock_count", "updated_at").
		Updates(book)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks an active book as deleted. The row and its loan history stay.
func (r *bookRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.active(ctx).
		Where("id = ?", id).
		Update("status", string(domain.BookDeleted))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock takes one copy off the shelf. The update only matches while a
// copy is available, so stock can never go below zero.
func (r *bookRepository) DecrementStock(ctx context.Context, id uint) error {
	result := r.active(ctx).
		Where("id = ? AND stock_count >= 1", id).
		UpdateColumn("stock_count", gorm.Expr("stock_count - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOutOfStock
	}
	return nil
}

// IncrementStock puts one copy back. Deleted books are included so a
// returned copy is always counted.
func (r *bookRepository) IncrementStock(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", id).
		UpdateColumn("stock_count", gorm.Expr("stock_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(s)
}
