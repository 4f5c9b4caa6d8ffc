// Package testutil provides in-memory databases and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/pkg/password"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every fixture user
const Password = "password123"

// NewDB opens a migrated in-memory SQLite database that is closed when the test ends
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// NewSQLX shares the connection pool of db with sqlx
func NewSQLX(t testing.TB, db *gorm.DB) *sqlx.DB {
	t.Helper()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	return sqlx.NewDb(sqlDB, "sqlite3")
}

// CreateUser inserts a user whose password is Password
func CreateUser(t testing.TB, db *gorm.DB, username string, role domain.Role) *models.User {
	t.Helper()

	hash, err := password.HashWithCost(Password, bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Password: hash,
		Role:     string(role),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateBook inserts an active book with the given stock
func CreateBook(t testing.TB, db *gorm.DB, title string, stock int) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:      title,
		ISBN:       "978-" + title,
		Author:     "Author of " + title,
		Publisher:  "Test Press",
		StockCount: stock,
		Status:     string(domain.BookActive),
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

// CreateLoan inserts a loan row. A nil returnedAt leaves the loan outstanding.
func CreateLoan(t testing.TB, db *gorm.DB, userID, bookID uint, loanDate, deadline time.Time, returnedAt *time.Time) *models.Loan {
	t.Helper()

	loan := &models.Loan{
		UserID:         userID,
		BookID:         bookID,
		LoanDate:       loanDate.UTC(),
		ReturnDeadline: deadline.UTC(),
		ReturnDate:     returnedAt,
	}
	require.NoError(t, db.Omit("User", "Book").Create(loan).Error)
	return loan
}

// ReloadBook reads the current row of a book, deleted or not
func ReloadBook(t testing.TB, db *gorm.DB, id uint) *models.Book {
	t.Helper()

	var book models.Book
	require.NoError(t, db.First(&book, id).Error)
	return &book
}

// CountLoans counts all loan rows
func CountLoans(t testing.TB, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Loan{}).Count(&count).Error)
	return count
}
