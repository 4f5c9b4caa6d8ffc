package models

import (
	"time"

	"bookshelf/internal/core/domain"

	"gorm.io/gorm"
)

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:50;not null"`
	Password  string    `gorm:"size:255;not null"`
	Role      string    `gorm:"size:20;not null;default:'member';index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.Password,
		Role:         domain.Role(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

// Book represents books table. Rows are never removed; Status marks deletion.
type Book struct {
	ID         uint      `gorm:"primaryKey"`
	Title      string    `gorm:"size:255;not null;index"`
	ISBN       string    `gorm:"column:isbn;size:32;not null;index"`
	Author     string    `gorm:"size:255"`
	Publisher  string    `gorm:"size:255"`
	StockCount int       `gorm:"not null;default:0"`
	Status     string    `gorm:"size:20;not null;default:'active';index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) ToDomain() *domain.Book {
	return &domain.Book{
		ID:         b.ID,
		Title:      b.Title,
		ISBN:       b.ISBN,
		Author:     b.Author,
		Publisher:  b.Publisher,
		StockCount: b.StockCount,
		Status:     domain.BookStatus(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// BookFromDomain converts a domain book into its row form
func BookFromDomain(b *domain.Book) *Book {
	status := string(b.Status)
	if status == "" {
		status = string(domain.BookActive)
	}
	return &Book{
		ID:         b.ID,
		Title:      b.Title,
		ISBN:       b.ISBN,
		Author:     b.Author,
		Publisher:  b.Publisher,
		StockCount: b.StockCount,
		Status:     status,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// Loan represents loans table. A NULL return_date marks an outstanding loan.
type Loan struct {
	ID             uint       `gorm:"primaryKey"`
	UserID         uint       `gorm:"not null;index"`
	BookID         uint       `gorm:"not null;index"`
	LoanDate       time.Time  `gorm:"not null;index"`
	ReturnDeadline time.Time  `gorm:"not null;index"`
	ReturnDate     *time.Time `gorm:"index"`
	User           User       `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Book           Book       `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) ToDomain() *domain.Loan {
	return &domain.Loan{
		ID:             l.ID,
		UserID:         l.UserID,
		BookID:         l.BookID,
		BookTitle:      l.Book.Title,
		LoanDate:       l.LoanDate,
		ReturnDeadline: l.ReturnDeadline,
		ReturnDate:     l.ReturnDate,
	}
}

// Session represents sessions table
type Session struct {
	ID        string     `gorm:"primaryKey;size:36"`
	UserID    uint       `gorm:"index;not null"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	RevokedAt *time.Time `gorm:"index"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) ToDomain() *domain.Session {
	return &domain.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
		RevokedAt: s.RevokedAt,
	}
}

// All lists every table model in dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Book{},
		&Loan{},
		&Session{},
	}
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

// Reset drops every table and recreates the schema. All data is lost.
func Reset(db *gorm.DB) error {
	tables := All()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return err
		}
	}
	return AutoMigrate(db)
}
