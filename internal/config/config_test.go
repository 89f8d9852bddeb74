package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/radorder_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected default env to be development")
	}
	if cfg.DuplicateWindow() != 30*time.Minute {
		t.Errorf("expected 30m duplicate window, got %s", cfg.DuplicateWindow())
	}
	if cfg.JWTTTL() != time.Hour {
		t.Errorf("expected 60m token ttl, got %s", cfg.JWTTTL())
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/radorder_test")
	t.Setenv("EXAM_DUPLICATE_WINDOW_MINUTES", "5")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DuplicateWindow() != 5*time.Minute {
		t.Errorf("expected 5m duplicate window, got %s", cfg.DuplicateWindow())
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
}

func TestValidate_RequiresSecretOutsideDev(t *testing.T) {
	cfg := &Config{Env: "production", JWTTTLMinutes: 60}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without JWT_SECRET in production")
	}

	cfg.JWTSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
