package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CFG_VALUE", "custom")
	if got := getEnv("CFG_VALUE", "default"); got != "custom" {
		t.Fatalf("getEnv returned %q, want custom", got)
	}

	// Empty environment value should fall back to default
	t.Setenv("CFG_EMPTY", "")
	if got := getEnv("CFG_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("getEnv returned %q, want fallback", got)
	}
}

func TestGetDuration(t *testing.T) {
	t.Setenv("CFG_DURATION", "250ms")
	if got := getDuration("CFG_DURATION", time.Second); got != 250*time.Millisecond {
		t.Fatalf("getDuration returned %v, want 250ms", got)
	}

	t.Setenv("CFG_DURATION", "soon")
	if got := getDuration("CFG_DURATION", time.Second); got != time.Second {
		t.Fatalf("getDuration returned %v for an invalid value, want default", got)
	}
}

func TestLoad(t *testing.T) {
	// Ensure defaults when env vars are empty.
	for _, key := range []string{
		"PORT", "DATABASE_URL", "LOG_LEVEL", "SEED", "DEFAULT_LOCALE",
		"MODEL_BACKEND", "MODEL_PATH", "MODEL_NAME", "MODEL_URL", "MODEL_TIMEOUT",
		"OPENAI_API_KEY", "OPENAI_SLEEP_MODEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.LogLevel != "info" || cfg.DefaultLocale != "en-US" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Seed || cfg.HasDatabase() {
		t.Fatalf("expected no seeding and no database by default: %+v", cfg)
	}
	if cfg.ModelBackend != BackendLinear || cfg.ModelName != "sleep-calculator" || cfg.ModelTimeout != 5*time.Second {
		t.Fatalf("model defaults not applied: %+v", cfg)
	}

	// Custom values override defaults
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED", "true")
	t.Setenv("DEFAULT_LOCALE", "de-DE")
	t.Setenv("MODEL_BACKEND", BackendRemote)
	t.Setenv("MODEL_URL", "http://model:9000")
	t.Setenv("MODEL_TIMEOUT", "2s")
	t.Setenv("OPENAI_API_KEY", "key")
	t.Setenv("OPENAI_SLEEP_MODEL", "model")

	cfg = Load()
	if cfg.Port != "9090" || cfg.DatabaseURL != "postgres://example" || cfg.LogLevel != "debug" || !cfg.Seed {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.DefaultLocale != "de-DE" || cfg.ModelBackend != BackendRemote || cfg.ModelURL != "http://model:9000" || cfg.ModelTimeout != 2*time.Second {
		t.Fatalf("model env overrides missing: %+v", cfg)
	}
	if cfg.OpenAIAPIKey != "key" || cfg.OpenAISleepModel != "model" {
		t.Fatalf("openai env overrides missing: %+v", cfg)
	}
}
