package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PROMPT_PROVIDER", "")
	t.Setenv("KV_BACKEND", "")
	t.Setenv("GEMINI_IMAGE_MODEL", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("MODEL_RATE_LIMIT_PER_MINUTE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PromptProvider != "gemini" {
		t.Fatalf("PromptProvider = %q, want gemini", cfg.PromptProvider)
	}
	if cfg.KVBackend != KVBackendMemory {
		t.Fatalf("KVBackend = %q, want %q", cfg.KVBackend, KVBackendMemory)
	}
	if cfg.GeminiImageModel != "gemini-2.0-flash-exp" {
		t.Fatalf("GeminiImageModel = %q", cfg.GeminiImageModel)
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Fatalf("SessionTTL = %s", cfg.SessionTTL)
	}
	if cfg.ModelRateLimit != 0 {
		t.Fatalf("ModelRateLimit = %d, want 0 (disabled)", cfg.ModelRateLimit)
	}
}

func TestLoadConfigModelRateLimitOptIn(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MODEL_RATE_LIMIT_PER_MINUTE", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ModelRateLimit != 30 {
		t.Fatalf("ModelRateLimit = %d, want 30", cfg.ModelRateLimit)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigRejectsUnknownKVBackend(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("KV_BACKEND", "etcd")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported KV_BACKEND")
	}
}

func TestLoadConfigSplitsCORSOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("KV_BACKEND", "redis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, http://localhost:3000 ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	want := []string{"https://app.example.com", "http://localhost:3000"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("CORSAllowedOrigins = %#v, want %#v", cfg.CORSAllowedOrigins, want)
	}
	for i := range want {
		if cfg.CORSAllowedOrigins[i] != want[i] {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], want[i])
		}
	}
}
