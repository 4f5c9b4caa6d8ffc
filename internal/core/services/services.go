package services

import (
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/config"
)

// Services bundles the application services shared by the HTTP routes,
// the scheduler and the command line tool.
type Services struct {
	Catalog *CatalogService
	Loans   *LoanService
	Auth    *AuthService
	Users   *UserService
	Reports *ReportService
}

// New wires every service onto the given repositories
func New(repos *repositories.Repositories, reports repositories.ReportRepository, cfg *config.Config) *Services {
	return &Services{
		Catalog: NewCatalogService(repos),
		Loans:   NewLoanService(repos),
		Auth:    NewAuthService(repos.Users, repos.Sessions, cfg),
		Users:   NewUserService(repos.Users),
		Reports: NewReportService(reports),
	}
}
