package repositories

import (
	"context"
	"errors"
	"time"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create inserts a loan row
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(loan).Error
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// CountActiveByUser counts the user's outstanding loans
func (r *loanRepository) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("user_id = ?", userID).
		Where("return_date IS NULL").
		Count(&count).Error
	return count, err
}

// CountActiveByBook counts outstanding loans of a book
func (r *loanRepository) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("book_id = ?", bookID).
		Where("return_date IS NULL").
		Count(&count).Error
	return count, err
}

// ListByUser returns the user's loan history, newest loan first. Book titles
// are loaded for deleted books too.
func (r *loanRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("loan_date DESC").
		Order("id DESC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// MarkReturned stamps the return date on an outstanding loan. A loan that was
// already returned is left untouched and reported as ErrAlreadyReturned.
func (r *loanRepository) MarkReturned(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ? AND return_date IS NULL", id).
		Update("return_date", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadyReturned
	}
	return nil
}
