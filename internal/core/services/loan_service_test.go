package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"bookshelf/internal/core/domain"
	"bookshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowAndReturnRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.member(t, "alice")
	book := testutil.CreateBook(t, f.db, "Dune", 2)
	other := testutil.CreateBook(t, f.db, "Emma", 4)

	loan, err := f.loans.Borrow(ctx, alice, book.ID, monday)
	require.NoError(t, err)

	assert.Equal(t, alice.UserID, loan.UserID)
	assert.Equal(t, "Dune", loan.BookTitle)
	assert.True(t, loan.IsActive())
	assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), loan.ReturnDeadline)
	assert.Equal(t, 1, testutil.ReloadBook(t, f.db, book.ID).StockCount)
	assert.Equal(t, int64(1), testutil.CountLoans(t, f.db))

	returned, err := f.loans.Return(ctx, alice, loan.ID, monday.Add(24*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate)

	assert.Equal(t, 2, testutil.ReloadBook(t, f.db, book.ID).StockCount)
	assert.Equal(t, 4, testutil.ReloadBook(t, f.db, other.ID).StockCount)
	assert.Equal(t, int64(1), testutil.CountLoans(t, f.db))
}

func TestReturnTwiceIncrementsStockOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.member(t, "alice")
	book := testutil.CreateBook(t, f.db, "Dune", 1)

	loan, err := f.loans.Borrow(ctx, alice, book.ID, monday)
	require.NoError(t, err)

	_, err = f.loans.Return(ctx, alice, loan.ID, monday)
	require.NoError(t, err)

	_, err = f.loans.Return(ctx, alice, loan.ID, monday)
	assert.ErrorIs(t, err, domain.ErrAlreadyReturned)
	assert.Equal(t, 1, testutil.ReloadBook(t, f.db, book.ID).StockCount)
}

func TestBorrowLoanLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.member(t, "alice")
	for i := 0; i < 4; i++ {
		book := testutil.CreateBook(t, f.db, fmt.Sprintf("Book %d", i), 1)
		_, err := f.loans.Borrow(ctx, alice, book.ID, monday)
		require.NoError(t, err)
	}

	fifth := testutil.CreateBook(t, f.db, "Fifth", 1)
	_, err := f.loans.Borrow(ctx, alice, fifth.ID, monday)
	require.NoError(t, err, "four active loans may take a fifth")

	sixth := testutil.CreateBook(t, f.db, "Sixth", 1)
	_, err = f.loans.Borrow(ctx, alice, sixth.ID, monday)
	assert.ErrorIs(t, err, domain.ErrLoanLimitReached)
	assert.ErrorIs(t, err, domain.ErrIneligible)
	assert.Equal(t, 1, testutil.ReloadBook(t, f.db, sixth.ID).StockCount)
	assert.Equal(t, int64(5), testutil.CountLoans(t, f.db))
}

func TestBorrowRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.member(t, "alice")

	t.Run("out of stock", func(t *testing.T) {
		book := testutil.CreateBook(t, f.db, "Empty", 0)
		_, err := f.loans.Borrow(ctx, alice, book.ID, monday)
		assert.ErrorIs(t, err, domain.ErrOutOfStock)
		assert.Equal(t, 0, testutil.ReloadBook(t, f.db, book.ID).StockCount)
	})

	t.Run("deleted book", func(t *testing.T) {
		book := testutil.CreateBook(t, f.db, "Gone", 3)
		require.NoError(t, f.repos.Books.SoftDelete(ctx, book.ID))
		_, err := f.loans.Borrow(ctx, alice, book.ID, monday)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := f.loans.Borrow(ctx, alice, 9999, monday)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		book := testutil.CreateBook(t, f.db, "Open", 1)
		_, err := f.loans.Borrow(ctx, nil, book.ID, monday)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	assert.Equal(t, int64(0), testutil.CountLoans(t, f.db))
}

func TestBorrowWeekendDeadlineRollsForward(t *testing.T) {
	f := newFixture(t)
	alice := f.member(t, "alice")
	book := testutil.CreateBook(t, f.db, "Dune", 1)

	sunday := time.Date(2026, 2, 1, 15, 0, 0, 0, time.UTC)
	loan, err := f.loans.Borrow(context.Background(), alice, book.ID, sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, loan.ReturnDeadline.Weekday())
	assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), loan.ReturnDeadline)
}

func TestReturnRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.member(t, "alice")
	bob := f.member(t, "bob")
	book := testutil.CreateBook(t, f.db, "Dune", 1)

	loan, err := f.loans.Borrow(ctx, alice, book.ID, monday)
	require.NoError(t, err)

	_, err = f.loans.Return(ctx, bob, loan.ID, monday)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.loans.Return(ctx, alice, 9999, monday)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 0, testutil.ReloadBook(t, f.db, book.ID).StockCount)
}

func TestReturnSucceedsAfterBookDeletedAndWithZeroStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.member(t, "alice")
	book := testutil.CreateBook(t, f.db, "Dune", 0)
	loan := testutil.CreateLoan(t, f.db, alice.UserID, book.ID, monday, monday.AddDate(0, 0, 14), nil)
	require.NoError(t, f.repos.Books.SoftDelete(ctx, book.ID))

	_, err := f.loans.Return(ctx, alice, loan.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.ReloadBook(t, f.db, book.ID).StockCount)
}

func TestListMine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.member(t, "alice")
	bob := f.member(t, "bob")
	dune := testutil.CreateBook(t, f.db, "Dune", 1)
	emma := testutil.CreateBook(t, f.db, "Emma", 1)

	late := testutil.CreateLoan(t, f.db, alice.UserID, dune.ID, monday.AddDate(0, 0, -30), monday.AddDate(0, 0, -16), nil)
	recent, err := f.loans.Borrow(ctx, alice, emma.ID, monday)
	require.NoError(t, err)
	testutil.CreateLoan(t, f.db, bob.UserID, dune.ID, monday, monday.AddDate(0, 0, 14), nil)

	items, err := f.loans.ListMine(ctx, alice, monday)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, recent.ID, items[0].ID)
	assert.Equal(t, "Emma", items[0].BookTitle)
	assert.False(t, items[0].Overdue)

	assert.Equal(t, late.ID, items[1].ID)
	assert.Equal(t, "Dune", items[1].BookTitle)
	assert.True(t, items[1].Overdue)
}

func TestConcurrentBorrowsNeverOverdrawStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book := testutil.CreateBook(t, f.db, "Dune", 3)
	actors := make([]*domain.Actor, 10)
	for i := range actors {
		actors[i] = f.member(t, fmt.Sprintf("reader%d", i))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var succeeded, outOfStock int
	for _, actor := range actors {
		wg.Add(1)
		go func(actor *domain.Actor) {
			defer wg.Done()
			_, err := f.loans.Borrow(ctx, actor, book.ID, monday)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrOutOfStock):
				outOfStock++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(actor)
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 7, outOfStock)
	assert.Equal(t, 0, testutil.ReloadBook(t, f.db, book.ID).StockCount)
	assert.Equal(t, int64(3), testutil.CountLoans(t, f.db))
}
