package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// BookStatus is the catalog lifecycle state of a book
type BookStatus string

const (
	BookActive  BookStatus = "active"
	BookDeleted BookStatus = "deleted"
)

// User represents a user in the domain layer
type User struct {
	ID           uint
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Book represents a catalog entry
type Book struct {
	ID         uint
	Title      string
	ISBN       string
	Author     string
	Publisher  string
	StockCount int
	Status     BookStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive reports whether the book is visible in the catalog
func (b Book) IsActive() bool {
	return b.Status == BookActive
}

// Loan is one borrow event. A nil ReturnDate marks an outstanding loan.
type Loan struct {
	ID             uint
	UserID         uint
	BookID         uint
	BookTitle      string
	LoanDate       time.Time
	ReturnDeadline time.Time
	ReturnDate     *time.Time
}

// IsActive reports whether the loan is still outstanding
func (l Loan) IsActive() bool {
	return l.ReturnDate == nil
}

// Session represents a server-side login session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsValid reports whether the session can still authenticate requests at now
func (s Session) IsValid(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// OverdueLoan is a reporting row for an outstanding loan past its deadline
type OverdueLoan struct {
	LoanID         uint      `db:"loan_id" json:"loan_id"`
	UserID         uint      `db:"user_id" json:"user_id"`
	Username       string    `db:"username" json:"username"`
	BookID         uint      `db:"book_id" json:"book_id"`
	Title          string    `db:"title" json:"title"`
	ReturnDeadline time.Time `db:"return_deadline" json:"return_deadline"`
}

// Summary holds catalog and circulation counters for the librarian dashboard
type Summary struct {
	ActiveBooks  int64 `db:"active_books" json:"active_books"`
	TotalStock   int64 `db:"total_stock" json:"total_stock"`
	ActiveLoans  int64 `db:"active_loans" json:"active_loans"`
	OverdueLoans int64 `db:"overdue_loans" json:"overdue_loans"`
	Members      int64 `db:"members" json:"members"`
}
