package services

import (
	"context"
	"log"
	"time"

	"bookshelf/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// Default schedules, evaluated in the library's time zone
const (
	SessionPurgeSchedule = "0 2 * * *"
	OverdueSweepSchedule = "30 8 * * *"
)

// CronService runs the nightly housekeeping jobs
type CronService struct {
	cron    *cron.Cron
	auth    *AuthService
	reports *ReportService
	now     func() time.Time
}

// NewCronService creates the scheduler. now supplies the library's local time.
func NewCronService(auth *AuthService, reports *ReportService, loc *time.Location, now func() time.Time) *CronService {
	if loc == nil {
		loc = time.Local
	}
	return &CronService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		auth:    auth,
		reports: reports,
		now:     now,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(SessionPurgeSchedule, s.PurgeSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(OverdueSweepSchedule, s.SweepOverdue); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("⏰ Cron started: session purge %q, overdue sweep %q", SessionPurgeSchedule, OverdueSweepSchedule)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("⏰ Cron stopped")
}

// PurgeSessions deletes expired and revoked sessions
func (s *CronService) PurgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.auth.PurgeExpiredSessions(ctx)
	if err != nil {
		log.Printf("❌ Session purge failed: %v", err)
		return
	}
	log.Printf("🧹 Purged %d sessions", n)
}

// SweepOverdue logs the loans that are past due today
func (s *CronService) SweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	loans, err := s.reports.Overdue(ctx, domain.Operator(), s.now())
	if err != nil {
		log.Printf("❌ Overdue sweep failed: %v", err)
		return
	}

	log.Printf("📋 %d overdue loans", len(loans))
	for _, loan := range loans {
		log.Printf("   loan #%d: %s has %q, due %s",
			loan.LoanID, loan.Username, loan.Title, loan.ReturnDeadline.Format("2006-01-02"))
	}
}
