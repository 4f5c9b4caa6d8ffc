// Package lending holds the borrowing rules of the library: who may borrow,
// when a loan falls due and when a return is accepted.
//
// Every function here is pure. Callers load the current state, ask for a
// decision and then persist the outcome inside their own transaction.
package lending

import (
	"time"

	"bookshelf/internal/core/domain"
)

const (
	// MaxActiveLoans is the number of outstanding loans that blocks a new borrow.
	MaxActiveLoans = 5
	// LoanPeriodDays is the base loan window before weekend roll-forward.
	LoanPeriodDays = 14
)

// BorrowDecision is the outcome of a successful eligibility check
type BorrowDecision struct {
	BookID  uint
	DueDate time.Time
}

// CanBorrow reports whether a borrower holding activeLoanCount outstanding
// loans may take a book whose stock is stockCount.
func CanBorrow(activeLoanCount, stockCount int) bool {
	return stockCount >= 1 && activeLoanCount < MaxActiveLoans
}

// DateOf returns the calendar date of t as midnight UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeDueDate returns today's date plus LoanPeriodDays, moved to the
// following Monday when that lands on a weekend.
func ComputeDueDate(today time.Time) time.Time {
	due := DateOf(today).AddDate(0, 0, LoanPeriodDays)
	switch due.Weekday() {
	case time.Saturday:
		due = due.AddDate(0, 0, 2)
	case time.Sunday:
		due = due.AddDate(0, 0, 1)
	}
	return due
}

// ApplyBorrow decides whether book may be lent to a borrower with
// activeLoanCount outstanding loans on today.
//
//	ERROR: ErrNotFound if the book is deleted
//	ERROR: ErrOutOfStock if no copy is on the shelf
//	ERROR: ErrLoanLimitReached if the borrower already holds MaxActiveLoans
func ApplyBorrow(book domain.Book, activeLoanCount int, today time.Time) (BorrowDecision, error) {
	if !book.IsActive() {
		return BorrowDecision{}, domain.ErrNotFound
	}
	if book.StockCount < 1 {
		return BorrowDecision{}, domain.ErrOutOfStock
	}
	if !CanBorrow(activeLoanCount, book.StockCount) {
		return BorrowDecision{}, domain.ErrLoanLimitReached
	}

	return BorrowDecision{
		BookID:  book.ID,
		DueDate: ComputeDueDate(today),
	}, nil
}

// ApplyReturn checks that actor may return loan. Stock is never consulted:
// a return only ever adds a copy back.
func ApplyReturn(loan domain.Loan, actor domain.Actor) error {
	if loan.UserID != actor.UserID {
		return domain.ErrForbidden
	}
	if !loan.IsActive() {
		return domain.ErrAlreadyReturned
	}
	return nil
}

// IsOverdue reports whether an outstanding loan has passed its deadline on today
func IsOverdue(loan domain.Loan, today time.Time) bool {
	return loan.IsActive() && loan.ReturnDeadline.Before(DateOf(today))
}
