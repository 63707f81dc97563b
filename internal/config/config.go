package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// DefaultEnvFiles are loaded, when present, before reading the environment.
var DefaultEnvFiles = []string{"config/local.env", ".env"}

// Config holds all application configuration
type Config struct {
	// Store selects the album backend: postgres or memory.
	Store string

	Database  DatabaseConfig
	Server    ServerConfig
	CORS      CORSConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig

	// SeedDemoData inserts demo albums on serve when the store is empty.
	SeedDemoData bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver   string // pgx or postgres
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string // optional rotating log file
}

// RateLimitConfig holds per-client request limits. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Enabled reports whether requests should be rate limited.
func (r RateLimitConfig) Enabled() bool {
	return r.RPS > 0
}

// Load reads the env files, if present, then configuration from environment
// variables. With no files given DefaultEnvFiles are used.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = DefaultEnvFiles
	}
	for _, file := range envFiles {
		// godotenv never overrides variables that are already set.
		_ = godotenv.Load(file)
	}

	cfg := &Config{}
	var problems []string

	cfg.Store = strings.ToLower(getEnvOrDefault("STORE", StorePostgres))
	cfg.SeedDemoData = getEnvBool("SEED_DEMO_DATA", &problems)

	cfg.loadDatabase(&problems)
	cfg.loadServer(&problems)
	cfg.loadCORS()
	cfg.loadLogging()
	cfg.loadRateLimit(&problems)

	if err := cfg.validate(problems); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadDatabase(problems *[]string) {
	c.Database.Driver = strings.ToLower(getEnvOrDefault("DB_DRIVER", "pgx"))
	c.Database.URL = os.Getenv("DATABASE_URL")
	if c.Database.URL != "" {
		return
	}

	c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.Name = os.Getenv("DB_NAME")
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid DB_PORT: %v", err))
	}
	c.Database.Port = port

	if c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
}

func (c *Config) loadServer(problems *[]string) {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid PORT: %v", err))
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
}

func (c *Config) loadCORS() {
	c.CORS.AllowedOrigins = ParseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))
}

func (c *Config) loadLogging() {
	c.Logging.Level = strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info"))
	c.Logging.Format = strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json"))
	c.Logging.File = os.Getenv("LOG_FILE")
}

func (c *Config) loadRateLimit(problems *[]string) {
	rps, err := strconv.ParseFloat(getEnvOrDefault("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid RATE_LIMIT_RPS: %v", err))
	}
	burst, err := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_BURST", "20"))
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid RATE_LIMIT_BURST: %v", err))
	}
	c.RateLimit = RateLimitConfig{RPS: rps, Burst: burst}
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	return c.validate(nil)
}

func (c *Config) validate(problems []string) error {
	errors := append([]string(nil), problems...)

	switch c.Store {
	case StorePostgres:
		if c.Database.URL == "" {
			errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
		}
		if c.Database.Driver != "pgx" && c.Database.Driver != "postgres" {
			errors = append(errors, "DB_DRIVER must be one of: pgx, postgres")
		}
	case StoreMemory:
	default:
		errors = append(errors, "STORE must be one of: postgres, memory")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if c.RateLimit.RPS < 0 {
		errors = append(errors, "RATE_LIMIT_RPS must not be negative")
	}
	if c.RateLimit.Enabled() && c.RateLimit.Burst < 1 {
		errors = append(errors, "RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ParseAllowedOrigins splits a comma separated origin list.
func ParseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, problems *[]string) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("invalid %s: %v", key, err))
	}
	return v
}
