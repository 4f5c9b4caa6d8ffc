package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

func TestLoanRepositoryCounts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewLoanRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", domain.RoleMember)
	bob := testutil.CreateUser(t, db, "bob", domain.RoleMember)
	book := testutil.CreateBook(t, db, "Dune", 5)
	returned := day.Add(time.Hour)

	testutil.CreateLoan(t, db, alice.ID, book.ID, day, day.AddDate(0, 0, 14), nil)
	testutil.CreateLoan(t, db, alice.ID, book.ID, day, day.AddDate(0, 0, 14), &returned)
	testutil.CreateLoan(t, db, bob.ID, book.ID, day, day.AddDate(0, 0, 14), nil)

	count, err := repo.CountActiveByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountActiveByBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLoanRepositoryListByUserIncludesDeletedTitles(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewLoanRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", domain.RoleMember)
	dune := testutil.CreateBook(t, db, "Dune", 1)
	emma := testutil.CreateBook(t, db, "Emma", 1)

	older := testutil.CreateLoan(t, db, alice.ID, dune.ID, day, day.AddDate(0, 0, 14), nil)
	newer := testutil.CreateLoan(t, db, alice.ID, emma.ID, day.AddDate(0, 0, 1), day.AddDate(0, 0, 15), nil)
	require.NoError(t, repositories.NewBookRepository(db).SoftDelete(ctx, dune.ID))

	loans, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, loans, 2)

	assert.Equal(t, newer.ID, loans[0].ID)
	assert.Equal(t, "Emma", loans[0].ToDomain().BookTitle)
	assert.Equal(t, older.ID, loans[1].ID)
	assert.Equal(t, "Dune", loans[1].ToDomain().BookTitle)
}

func TestLoanRepositoryMarkReturnedOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewLoanRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", domain.RoleMember)
	book := testutil.CreateBook(t, db, "Dune", 1)
	loan := testutil.CreateLoan(t, db, alice.ID, book.ID, day, day.AddDate(0, 0, 14), nil)

	returnedAt := day.Add(48 * time.Hour)
	require.NoError(t, repo.MarkReturned(ctx, loan.ID, returnedAt))

	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReturnDate)
	assert.True(t, got.ReturnDate.Equal(returnedAt))

	err = repo.MarkReturned(ctx, loan.ID, returnedAt.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrAlreadyReturned)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepositoriesTransactionRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", domain.RoleMember)
	book := testutil.CreateBook(t, db, "Dune", 1)
	boom := errors.New("boom")

	err := repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		require.NoError(t, tx.Books.DecrementStock(ctx, book.ID))
		require.NoError(t, tx.Loans.Create(ctx, &models.Loan{
			UserID:         alice.ID,
			BookID:         book.ID,
			LoanDate:       day,
			ReturnDeadline: day.AddDate(0, 0, 14),
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 1, testutil.ReloadBook(t, db, book.ID).StockCount)
	assert.Equal(t, int64(0), testutil.CountLoans(t, db))
}
