package services_test

import (
	"testing"
	"time"

	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/config"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/core/services"
	"bookshelf/internal/testutil"

	"gorm.io/gorm"
)

// monday is 2026-02-02 10:00 UTC; a loan taken then is due 2026-02-16
var monday = time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	cfg     *config.Config
	repos   *repositories.Repositories
	catalog *services.CatalogService
	loans   *services.LoanService
	auth    *services.AuthService
	users   *services.UserService
	reports *services.ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	repos := repositories.New(db)
	cfg := &config.Config{
		AppMode:  "dev",
		Session:  config.SessionConfig{Secret: "test-secret", Hours: 1},
		Location: time.UTC,
	}

	return &fixture{
		db:      db,
		cfg:     cfg,
		repos:   repos,
		catalog: services.NewCatalogService(repos),
		loans:   services.NewLoanService(repos),
		auth:    services.NewAuthService(repos.Users, repos.Sessions, cfg),
		users:   services.NewUserService(repos.Users),
		reports: services.NewReportService(repositories.NewReportRepository(testutil.NewSQLX(t, db))),
	}
}

func (f *fixture) member(t *testing.T, username string) *domain.Actor {
	t.Helper()
	u := testutil.CreateUser(t, f.db, username, domain.RoleMember)
	return &domain.Actor{UserID: u.ID, Username: u.Username, Role: domain.RoleMember}
}

func (f *fixture) admin(t *testing.T, username string) *domain.Actor {
	t.Helper()
	u := testutil.CreateUser(t, f.db, username, domain.RoleAdmin)
	return &domain.Actor{UserID: u.ID, Username: u.Username, Role: domain.RoleAdmin}
}

func intPtr(v int) *int {
	return &v
}
