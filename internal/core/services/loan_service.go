package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/core/lending"
)

// LoanService runs borrow and return against the loan ledger
type LoanService struct {
	repos *repositories.Repositories
}

// NewLoanService creates a new loan service
func NewLoanService(repos *repositories.Repositories) *LoanService {
	return &LoanService{repos: repos}
}

// LoanItem is a loan as shown in the borrower's history
type LoanItem struct {
	domain.Loan
	Overdue bool
}

// ListMine returns the actor's loans, newest first
func (s *LoanService) ListMine(ctx context.Context, actor *domain.Actor, now time.Time) ([]*LoanItem, error) {
	if actor == nil || actor.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}

	rows, err := s.repos.Loans.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	items := make([]*LoanItem, len(rows))
	for i, row := range rows {
		loan := row.ToDomain()
		items[i] = &LoanItem{
			Loan:    *loan,
			Overdue: lending.IsOverdue(*loan, now),
		}
	}
	return items, nil
}

// Borrow lends one copy of a book to the actor. The eligibility check, the
// stock decrement and the loan insert commit together or not at all.
//
//	ERROR: ErrNotFound if the book does not exist or is deleted
//	ERROR: ErrOutOfStock, ErrLoanLimitReached (both ErrIneligible)
func (s *LoanService) Borrow(ctx context.Context, actor *domain.Actor, bookID uint, now time.Time) (*domain.Loan, error) {
	if actor == nil || actor.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}

	var loan *domain.Loan
	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		book, err := tx.Books.GetActiveByID(ctx, bookID)
		if err != nil {
			return err
		}

		active, err := tx.Loans.CountActiveByUser(ctx, actor.UserID)
		if err != nil {
			return err
		}

		decision, err := lending.ApplyBorrow(*book.ToDomain(), int(active), now)
		if err != nil {
			return err
		}

		// guarded by stock_count >= 1 in case another borrow won the last copy
		if err := tx.Books.DecrementStock(ctx, decision.BookID); err != nil {
			return err
		}

		row := &models.Loan{
			UserID:         actor.UserID,
			BookID:         decision.BookID,
			LoanDate:       now.UTC(),
			ReturnDeadline: decision.DueDate,
		}
		if err := tx.Loans.Create(ctx, row); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		loan = row.ToDomain()
		loan.BookTitle = book.Title
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📖 Loan #%d: %s borrowed book #%d, due %s",
		loan.ID, actor.Username, loan.BookID, loan.ReturnDeadline.Format("2006-01-02"))
	return loan, nil
}

// Return closes an outstanding loan of the actor and puts the copy back.
// A second return of the same loan reports ErrAlreadyReturned and changes nothing.
//
//	ERROR: ErrNotFound if the loan does not exist
//	ERROR: ErrForbidden if the loan belongs to someone else
func (s *LoanService) Return(ctx context.Context, actor *domain.Actor, loanID uint, now time.Time) (*domain.Loan, error) {
	if actor == nil || actor.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}

	var loan *domain.Loan
	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		row, err := tx.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}

		if err := lending.ApplyReturn(*row.ToDomain(), *actor); err != nil {
			return err
		}

		returnedAt := now.UTC()
		if err := tx.Loans.MarkReturned(ctx, row.ID, returnedAt); err != nil {
			return err
		}
		if err := tx.Books.IncrementStock(ctx, row.BookID); err != nil {
			return err
		}

		row.ReturnDate = &returnedAt
		loan = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📗 Loan #%d returned by %s", loan.ID, actor.Username)
	return loan, nil
}
