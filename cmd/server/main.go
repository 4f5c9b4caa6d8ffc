package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bookshelf/internal/adapters/http/routes"
	"bookshelf/internal/adapters/http/server"
	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/config"
	"bookshelf/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "bookshelf/docs" // Swagger docs
)

// @title Bookshelf API
// @version 1.0
// @description Library catalog and lending API

// @license.name MIT

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	reportDB, err := config.SQLX(db, cfg.Database.Driver)
	if err != nil {
		log.Fatalf("❌ Failed to open report connection: %v", err)
	}

	svc := services.New(repositories.New(db), repositories.NewReportRepository(reportDB), cfg)

	// Nightly session purge and morning overdue sweep
	cronService := services.NewCronService(svc.Auth, svc.Reports, cfg.Location, cfg.Now)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}
	defer cronService.Stop()

	app := server.NewApp(cfg)
	routes.Setup(app, db, svc, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
