package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "matcher-gateway")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("BACKEND_BASE_URL", "http://backend.local")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_HOST", "")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "")
	t.Setenv("CREDENTIAL_TTL_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend.local" {
		t.Fatalf("unexpected base url: %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.Backend.Timeout)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("expected empty redis addr, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.CredentialTTL != 24*time.Hour {
		t.Fatalf("expected default ttl, got %v", cfg.Redis.CredentialTTL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("BACKEND_BASE_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing BACKEND_BASE_URL")
	}
	if !strings.Contains(err.Error(), "BACKEND_BASE_URL") {
		t.Fatalf("error should name the missing variable: %v", err)
	}
}

func TestLoad_RedisAddr(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_HOST", "cache.local")
	t.Setenv("REDIS_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Redis.Addr != "cache.local:6379" {
		t.Fatalf("expected default port appended, got %q", cfg.Redis.Addr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "3")
	t.Setenv("CREDENTIAL_TTL_SECONDS", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Backend.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.Backend.Timeout)
	}
	if cfg.Redis.CredentialTTL != time.Minute {
		t.Fatalf("expected 60s ttl, got %v", cfg.Redis.CredentialTTL)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "nope")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("expected fallback timeout, got %v", cfg.Backend.Timeout)
	}
}
