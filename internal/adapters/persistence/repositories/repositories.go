package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the write-side repositories that share one connection
// or one transaction.
type Repositories struct {
	db       *gorm.DB
	Users    UserRepository
	Books    BookRepository
	Loans    LoanRepository
	Sessions SessionRepository
}

// New creates repositories bound to db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:       db,
		Users:    NewUserRepository(db),
		Books:    NewBookRepository(db),
		Loans:    NewLoanRepository(db),
		Sessions: NewSessionRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single database
// transaction. The transaction commits when fn returns nil.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
