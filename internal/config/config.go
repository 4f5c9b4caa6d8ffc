package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Database   DatabaseConfig
	Session    SessionConfig
	Cookie     CookieConfig
	Seed       SeedConfig
	Location   *time.Location
	originsRaw string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret string
	Hours  int
}

// CookieConfig holds session cookie attributes
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// SeedConfig holds the development admin account created by the seeder
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
func FromEnv() (*Config, error) {
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	db, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig(appMode)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: db,
		Session:  session,
		Cookie:   loadCookieConfig(appMode),
		Seed: SeedConfig{
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
		Location:   loc,
		originsRaw: getEnv("ALLOWED_ORIGINS", ""),
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s]", appMode, db.Driver)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", DriverSQLite)))
	switch driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be sqlite, mysql or postgres)", driver)
	}

	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	defaultPort := "3306"
	if driver == DriverPostgres {
		defaultPort = "5432"
	}

	return DatabaseConfig{
		Driver:   driver,
		Path:     getEnv("DB_PATH", "instance/library.sqlite"),
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "library"),
	}, nil
}

// loadSessionConfig loads session config; prod refuses to start without a secret
func loadSessionConfig(mode string) (SessionConfig, error) {
	hours, err := strconv.Atoi(getEnv("SESSION_HOURS", "24"))
	if err != nil || hours < 1 {
		return SessionConfig{}, fmt.Errorf("invalid SESSION_HOURS: '%s'", os.Getenv("SESSION_HOURS"))
	}

	secret := getEnv("SESSION_SECRET", "")
	if secret == "" {
		if mode == "prod" {
			return SessionConfig{}, fmt.Errorf("SESSION_SECRET is required in prod mode")
		}
		secret = "dev"
	}

	return SessionConfig{Secret: secret, Hours: hours}, nil
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	defaultSecure := "false"
	if mode == "prod" {
		defaultSecure = "true"
	}
	secure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", defaultSecure))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "Lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// Now returns the current time in the library's calendar
func (c *Config) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.originsRaw == "" {
		if c.IsDev() {
			return "*"
		}
		return ""
	}
	return c.originsRaw
}
