package handlers

import (
	"time"

	"bookshelf/internal/core/domain"
	"bookshelf/internal/core/lending"
	"bookshelf/internal/core/services"
)

// UserResponse is the public view of an account
type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// BookResponse is the public view of a catalog entry
type BookResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	ISBN       string    `json:"isbn"`
	Author     string    `json:"author"`
	Publisher  string    `json:"publisher"`
	StockCount int       `json:"stock_count"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		ISBN:       b.ISBN,
		Author:     b.Author,
		Publisher:  b.Publisher,
		StockCount: b.StockCount,
		Available:  b.StockCount > 0,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// LoanResponse is a loan as shown to its borrower. Dates are calendar days.
type LoanResponse struct {
	ID             uint    `json:"id"`
	BookID         uint    `json:"book_id"`
	Title          string  `json:"title"`
	LoanDate       string  `json:"loan_date"`
	ReturnDeadline string  `json:"return_deadline"`
	ReturnDate     *string `json:"return_date"`
	Overdue        bool    `json:"overdue"`
}

const dateLayout = "2006-01-02"

func toLoanResponse(l *domain.Loan, overdue bool) LoanResponse {
	resp := LoanResponse{
		ID:             l.ID,
		BookID:         l.BookID,
		Title:          l.BookTitle,
		LoanDate:       l.LoanDate.Format(dateLayout),
		ReturnDeadline: l.ReturnDeadline.Format(dateLayout),
		Overdue:        overdue,
	}
	if l.ReturnDate != nil {
		returned := l.ReturnDate.Format(dateLayout)
		resp.ReturnDate = &returned
	}
	return resp
}

func toLoanItems(items []*services.LoanItem) []LoanResponse {
	out := make([]LoanResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toLoanResponse(&item.Loan, item.Overdue))
	}
	return out
}

// OverdueResponse is one row of the overdue report
type OverdueResponse struct {
	LoanID         uint   `json:"loan_id"`
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	BookID         uint   `json:"book_id"`
	Title          string `json:"title"`
	ReturnDeadline string `json:"return_deadline"`
	DaysOverdue    int    `json:"days_overdue"`
}

func toOverdueResponses(rows []domain.OverdueLoan, today time.Time) []OverdueResponse {
	day := lending.DateOf(today)
	out := make([]OverdueResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, OverdueResponse{
			LoanID:         row.LoanID,
			UserID:         row.UserID,
			Username:       row.Username,
			BookID:         row.BookID,
			Title:          row.Title,
			ReturnDeadline: row.ReturnDeadline.Format(dateLayout),
			DaysOverdue:    int(day.Sub(lending.DateOf(row.ReturnDeadline)).Hours() / 24),
		})
	}
	return out
}
