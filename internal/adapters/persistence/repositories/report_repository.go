package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/core/domain"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"    // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect import
	"github.com/jmoiron/sqlx"
)

// ErrBuildingQueryFailed wraps SQL builder failures
var ErrBuildingQueryFailed = errors.New("building report query failed")

const (
	tableBooks = "books"
	tableLoans = "loans"
	tableUsers = "users"
)

// reportRepository implements ReportRepository with goqu-built SQL scanned by sqlx
type reportRepository struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// NewReportRepository creates a report repository. The goqu dialect follows
// the sqlx driver name ("sqlite3", "mysql" or "postgres").
func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{
		db:      db,
		dialect: goqu.Dialect(db.DriverName()),
	}
}

// OverdueLoans lists outstanding loans whose deadline is before today, oldest first
func (r *reportRepository) OverdueLoans(ctx context.Context, today time.Time) ([]domain.OverdueLoan, error) {
	stmt := r.dialect.
		From(goqu.T(tableLoans).As("l")).
		Join(goqu.T(tableUsers).As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("l.user_id")))).
		Join(goqu.T(tableBooks).As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Select(
			goqu.I("l.id").As("loan_id"),
			goqu.I("l.user_id").As("user_id"),
			goqu.I("u.username").As("username"),
			goqu.I("l.book_id").As("book_id"),
			goqu.I("b.title").As("title"),
			goqu.I("l.return_deadline").As("return_deadline"),
		).
		Where(
			goqu.I("l.return_date").IsNull(),
			goqu.I("l.return_deadline").Lt(today),
		).
		Order(goqu.I("l.return_deadline").Asc(), goqu.I("l.id").Asc()).
		Prepared(true)

	query, args, err := stmt.ToSQL()
	if err != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, err)
	}

	loans := make([]domain.OverdueLoan, 0)
	if err := r.db.SelectContext(ctx, &loans, query, args...); err != nil {
		return nil, fmt.Errorf("query overdue loans: %w", err)
	}
	return loans, nil
}

// Summary counts catalog and circulation figures as of today
func (r *reportRepository) Summary(ctx context.Context, today time.Time) (*domain.Summary, error) {
	var summary domain.Summary

	books := r.dialect.
		From(tableBooks).
		Select(
			goqu.COUNT(goqu.Star()).As("active_books"),
			goqu.COALESCE(goqu.SUM("stock_count"), 0).As("total_stock"),
		).
		Where(goqu.C("status").Eq(string(domain.BookActive)))
	if err := r.get(ctx, &summary, books); err != nil {
		return nil, err
	}

	activeLoans := r.dialect.
		From(tableLoans).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("return_date").IsNull())
	if err := r.get(ctx, &summary.ActiveLoans, activeLoans); err != nil {
		return nil, err
	}

	overdue := activeLoans.Where(goqu.C("return_deadline").Lt(today))
	if err := r.get(ctx, &summary.OverdueLoans, overdue); err != nil {
		return nil, err
	}

	members := r.dialect.
		From(tableUsers).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("role").Eq(string(domain.RoleMember)))
	if err := r.get(ctx, &summary.Members, members); err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *reportRepository) get(ctx context.Context, dest interface{}, stmt *goqu.SelectDataset) error {
	query, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return errors.Join(ErrBuildingQueryFailed, err)
	}
	if err := r.db.GetContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("query summary: %w", err)
	}
	return nil
}
