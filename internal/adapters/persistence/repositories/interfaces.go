package repositories

import (
	"context"
	"time"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// BookRepository defines book repository interface.
// Every read excludes deleted books.
type BookRepository interface {
	List(ctx context.Context, query string, offset, limit int) ([]*models.Book, int64, error)
	GetActiveByID(ctx context.Context, id uint) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	SoftDelete(ctx context.Context, id uint) error
	DecrementStock(ctx context.Context, id uint) error
	IncrementStock(ctx context.Context, id uint) error
}

// LoanRepository defines loan ledger interface. Loans are never deleted.
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)
	CountActiveByBook(ctx context.Context, bookID uint) (int64, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error)
	MarkReturned(ctx context.Context, id uint, at time.Time) error
}

// SessionRepository defines session repository interface
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Revoke(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ReportRepository defines read-only reporting queries
type ReportRepository interface {
	OverdueLoans(ctx context.Context, today time.Time) ([]domain.OverdueLoan, error)
	Summary(ctx context.Context, today time.Time) (*domain.Summary, error)
}
