package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	JWTSecret          string
	GoogleClientID     string
	GoogleIssuer       string
	WebhookSecret      string
	PromptProvider     string
	GeminiAPIKey       string
	GeminiBaseURL      string
	GeminiImageModel   string
	GeminiTextModel    string
	GeminiVisionModel  string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	KVBackend          string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	KVSQLitePath       string
	SessionTTL         time.Duration
	StyleCatalogPath   string
	CORSAllowedOrigins []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	ModelTimeout       time.Duration
	ModelRateLimit     int
}

const (
	KVBackendMemory = "memory"
	KVBackendRedis  = "redis"
	KVBackendSQLite = "sqlite"
)

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleIssuer:       getEnv("GOOGLE_ISSUER", "https://accounts.google.com"),
		WebhookSecret:      os.Getenv("WEBHOOK_SECRET"),
		PromptProvider:     strings.ToLower(getEnv("PROMPT_PROVIDER", "gemini")),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiImageModel:   getEnv("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-exp"),
		GeminiTextModel:    getEnv("GEMINI_TEXT_MODEL", "gemini-1.5-flash"),
		GeminiVisionModel:  getEnv("GEMINI_VISION_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		KVBackend:          strings.ToLower(getEnv("KV_BACKEND", KVBackendMemory)),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		KVSQLitePath:       getEnv("KV_SQLITE_PATH", "data/flatify-kv.db"),
		SessionTTL:         time.Hour * time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*30)),
		StyleCatalogPath:   os.Getenv("STYLE_CATALOG_PATH"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		ModelTimeout:       time.Second * time.Duration(getEnvInt("MODEL_HTTP_TIMEOUT_SECONDS", 90)),
		ModelRateLimit:     getEnvInt("MODEL_RATE_LIMIT_PER_MINUTE", 0),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	switch cfg.PromptProvider {
	case "gemini", "openai":
	default:
		return nil, fmt.Errorf("PROMPT_PROVIDER must be gemini or openai, got %q", cfg.PromptProvider)
	}

	switch cfg.KVBackend {
	case KVBackendMemory, KVBackendRedis, KVBackendSQLite:
	default:
		return nil, fmt.Errorf("KV_BACKEND must be memory, redis or sqlite, got %q", cfg.KVBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
