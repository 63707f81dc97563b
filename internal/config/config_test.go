package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var envKeys = []string{
	"STORE", "DATABASE_URL", "DB_DRIVER", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_PORT", "DB_SSLMODE", "HOST", "PORT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
	"LOG_FORMAT", "LOG_FILE", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "SEED_DEMO_DATA",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaultsWithMemoryStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "memory")

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Store != StoreMemory {
		t.Fatalf("expected memory store, got %q", cfg.Store)
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", got)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"http://localhost:5173"}) {
		t.Fatalf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config %#v", cfg.Logging)
	}
	if cfg.RateLimit != (RateLimitConfig{RPS: 10, Burst: 20}) || !cfg.RateLimit.Enabled() {
		t.Fatalf("unexpected rate limit config %#v", cfg.RateLimit)
	}
	if cfg.SeedDemoData {
		t.Fatalf("seeding should be off by default")
	}
}

func TestLoadBuildsDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "records")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := "postgresql://shop:secret@db:5432/records?sslmode=disable"
	if cfg.Database.URL != want {
		t.Fatalf("expected %q, got %q", want, cfg.Database.URL)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("unexpected driver %q", cfg.Database.Driver)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv only fills variables that are not set at all.
	for _, key := range []string{"STORE", "PORT", "RATE_LIMIT_RPS", "SEED_DEMO_DATA"} {
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), "local.env")
	contents := "STORE=memory\nPORT=9090\nRATE_LIMIT_RPS=0\nSEED_DEMO_DATA=true\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Store != StoreMemory {
		t.Fatalf("env file values not applied: %#v", cfg)
	}
	if cfg.RateLimit.Enabled() {
		t.Fatalf("RATE_LIMIT_RPS=0 should disable limiting")
	}
	if !cfg.SeedDemoData {
		t.Fatalf("expected seeding to be enabled")
	}
}

func TestLoadCollectsAllProblems(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("RATE_LIMIT_BURST", "0")

	_, err := Load(missingEnvFile(t))
	if err == nil {
		t.Fatalf("expected validation error")
	}

	for _, want := range []string{
		"invalid PORT",
		"DATABASE_URL is required",
		"DB_DRIVER must be one of",
		"LOG_LEVEL must be one of",
		"RATE_LIMIT_BURST must be at least 1",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %q, got:\n%v", want, err)
		}
	}
}

func TestValidateRejectsUnknownStore(t *testing.T) {
	cfg := &Config{
		Store:   "sqlite",
		Server:  ServerConfig{Port: 8080},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "STORE must be one of") {
		t.Fatalf("expected STORE validation error, got %v", err)
	}
}

func TestParseAllowedOrigins(t *testing.T) {
	got := ParseAllowedOrigins(" http://a.example , ,http://b.example,")
	want := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
