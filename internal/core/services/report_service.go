package services

import (
	"context"
	"time"

	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/core/lending"
)

// ReportService serves the librarian's circulation reports
type ReportService struct {
	reportRepo repositories.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repositories.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// Overdue lists outstanding loans past their deadline as of today
func (s *ReportService) Overdue(ctx context.Context, actor *domain.Actor, today time.Time) ([]domain.OverdueLoan, error) {
	if err := domain.Authorize(actor, domain.CapViewReports); err != nil {
		return nil, err
	}
	return s.reportRepo.OverdueLoans(ctx, lending.DateOf(today))
}

// Summary returns catalog and circulation counters as of today
func (s *ReportService) Summary(ctx context.Context, actor *domain.Actor, today time.Time) (*domain.Summary, error) {
	if err := domain.Authorize(actor, domain.CapViewReports); err != nil {
		return nil, err
	}
	return s.reportRepo.Summary(ctx, lending.DateOf(today))
}
