package routes

import (
	"time"

	"bookshelf/internal/adapters/http/handlers"
	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/config"
	"bookshelf/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// summaryMaxAge is how long a browser may reuse the dashboard counters
const summaryMaxAge = 30 * time.Second

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, svc *services.Services, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(svc.Auth, svc.Users, cfg)
	bookHandler := handlers.NewBookHandler(svc.Catalog)
	loanHandler := handlers.NewLoanHandler(svc.Loans, cfg)
	reportHandler := handlers.NewReportHandler(svc.Reports, cfg)
	userHandler := handlers.NewUserHandler(svc.Users)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	requireSession := middleware.RequireSession(svc.Auth)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, requireSession)
	setupBookRoutes(apiV1.Group("/books"), bookHandler, requireSession)

	loanRoutes := apiV1.Group("/loans", requireSession, middleware.NoCacheHeaders())
	setupLoanRoutes(loanRoutes, loanHandler)

	adminRoutes := apiV1.Group("/admin", requireSession)
	setupAdminRoutes(adminRoutes, reportHandler, userHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, requireSession fiber.Handler) {
	router.Use(middleware.NoCacheHeaders())

	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", requireSession, handler.Me)
}

// setupBookRoutes configures catalog routes
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler, requireSession fiber.Handler) {
	// Public routes
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)

	// Librarian routes, capability checked by the catalog
	router.Post("/", requireSession, handler.Create)
	router.Put("/:id", requireSession, handler.Update)
	router.Delete("/:id", requireSession, handler.Delete)
}

// setupLoanRoutes configures borrowing routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.ListMine)
	router.Post("/borrow/:book_id", handler.Borrow)
	router.Post("/:id/return", handler.Return)
}

// setupAdminRoutes configures librarian routes
func setupAdminRoutes(router fiber.Router, reportHandler *handlers.ReportHandler, userHandler *handlers.UserHandler) {
	router.Get("/reports/overdue", middleware.NoCacheHeaders(), reportHandler.Overdue)
	router.Get("/reports/summary", middleware.PrivateCacheHeaders(summaryMaxAge), reportHandler.Summary)
	router.Get("/users", middleware.NoCacheHeaders(), userHandler.List)
}
