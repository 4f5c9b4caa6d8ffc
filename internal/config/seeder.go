package config

import (
	"errors"
	"fmt"
	"log"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		return err
	}

	if s.cfg.IsDev() {
		if err := s.seedDemoBooks(); err != nil {
			return err
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the librarian account named by SEED_ADMIN_USERNAME.
// Nothing is seeded without SEED_ADMIN_PASSWORD.
func (s *Seeder) seedAdminUser() error {
	seed := s.cfg.Seed
	if seed.AdminPassword == "" {
		log.Println("⚠️ Admin seed skipped: SEED_ADMIN_PASSWORD not set")
		return nil
	}
	if !password.ValidatePassword(seed.AdminPassword) {
		return fmt.Errorf("SEED_ADMIN_PASSWORD must be at least %d characters", password.MinLength)
	}

	var existing models.User
	err := s.db.Where("username = ?", seed.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := password.Hash(seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: seed.AdminUsername,
		Password: hashedPassword,
		Role:     "admin",
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedDemoBooks fills an empty catalog with a few titles for development
func (s *Seeder) seedDemoBooks() error {
	var count int64
	if err := s.db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	books := []models.Book{
		{Title: "The Go Programming Language", ISBN: "9780134190440", Author: "Alan A. A. Donovan", Publisher: "Addison-Wesley", StockCount: 3},
		{Title: "Designing Data-Intensive Applications", ISBN: "9781449373320", Author: "Martin Kleppmann", Publisher: "O'Reilly Media", StockCount: 2},
		{Title: "The Pragmatic Programmer", ISBN: "9780135957059", Author: "David Thomas", Publisher: "Addison-Wesley", StockCount: 1},
		{Title: "Dune", ISBN: "9780441013593", Author: "Frank Herbert", Publisher: "Ace", StockCount: 4},
	}

	for _, b := range books {
		b.Status = "active"
		if err := s.db.Create(&b).Error; err != nil {
			return err
		}
		log.Printf("   Created book: %s", b.Title)
	}
	return nil
}
