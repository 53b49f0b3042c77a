package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CLINIC_API_BASE_URL", "")
	t.Setenv("SEARCH_DEBOUNCE", "")
	cfg := Load()
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("expected default base URL, got %s", cfg.APIBaseURL)
	}
	if cfg.SearchDebounce != 300*time.Millisecond {
		t.Fatalf("expected default debounce, got %s", cfg.SearchDebounce)
	}
	if cfg.DefaultPageSize != 10 {
		t.Fatalf("expected default page size, got %d", cfg.DefaultPageSize)
	}
	if cfg.SettingsCacheTTL != 5*time.Minute {
		t.Fatalf("expected default settings TTL, got %s", cfg.SettingsCacheTTL)
	}
	if cfg.RedisTLS {
		t.Fatalf("expected redis TLS disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CLINIC_API_BASE_URL", "https://api.clinic.example")
	t.Setenv("CLINIC_REQUEST_TIMEOUT", "10s")
	t.Setenv("SEARCH_DEBOUNCE", "150ms")
	t.Setenv("DEFAULT_PAGE_SIZE", "20")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_TLS", "true")
	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.APIBaseURL != "https://api.clinic.example" {
		t.Fatalf("expected base URL override, got %s", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("expected request timeout override, got %s", cfg.RequestTimeout)
	}
	if cfg.SearchDebounce != 150*time.Millisecond {
		t.Fatalf("expected debounce override, got %s", cfg.SearchDebounce)
	}
	if cfg.DefaultPageSize != 20 {
		t.Fatalf("expected page size override, got %d", cfg.DefaultPageSize)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected redis addr override, got %s", cfg.RedisAddr)
	}
	if !cfg.RedisTLS {
		t.Fatalf("expected redis TLS override")
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("DEFAULT_PAGE_SIZE", "lots")
	t.Setenv("CLINIC_REQUEST_TIMEOUT", "soon")
	cfg := Load()
	if cfg.DefaultPageSize != 10 {
		t.Fatalf("expected fallback page size, got %d", cfg.DefaultPageSize)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("expected fallback timeout, got %s", cfg.RequestTimeout)
	}
}
