// Command geminikey stores the model API key used by the logo service in the
// integration_tokens table, so deployments can rotate it without touching the
// environment. With -show it prints the stored key, masked.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"flatify/internal/infra"
	"flatify/internal/infra/credentials"
	"flatify/internal/sqlinline"
)

var envKeys = map[string]string{
	credentials.ProviderGemini: "GEMINI_API_KEY",
	credentials.ProviderOpenAI: "OPENAI_API_KEY",
}

func main() {
	var (
		provider string
		key      string
		show     bool
	)
	flag.StringVar(&provider, "provider", credentials.ProviderGemini, "model provider: gemini or openai")
	flag.StringVar(&key, "key", "", "key to store; defaults to GEMINI_API_KEY or OPENAI_API_KEY")
	flag.BoolVar(&show, "show", false, "print the stored key (masked) instead of writing one")
	flag.Parse()
	_ = godotenv.Load()

	provider = strings.ToLower(strings.TrimSpace(provider))
	envKey, ok := envKeys[provider]
	if !ok {
		fail(fmt.Errorf("unsupported provider %q", provider))
	}
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fail(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fail(fmt.Errorf("connect: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "geminikey").Str("provider", provider).Logger()
	runner := infra.NewSQLRunner(pool, logger)
	store := credentials.NewStore(runner)

	if show {
		stored, err := store.Token(ctx, provider)
		if err != nil {
			fail(fmt.Errorf("read %s key: %w", provider, err))
		}
		if stored == "" {
			fmt.Printf("no %s key stored\n", provider)
			return
		}
		fmt.Printf("%s key: %s\n", provider, mask(stored))
		return
	}

	if key = strings.TrimSpace(key); key == "" {
		key = strings.TrimSpace(os.Getenv(envKey))
	}
	if key == "" {
		fail(fmt.Errorf("no key given: pass -key or set %s", envKey))
	}
	if _, err := runner.Exec(ctx, sqlinline.QEnsureSchema); err != nil {
		fail(fmt.Errorf("apply schema: %w", err))
	}
	if provider == credentials.ProviderOpenAI {
		err = store.SetOpenAIAPIKey(ctx, key)
	} else {
		err = store.SetGeminiAPIKey(ctx, key)
	}
	if err != nil {
		fail(fmt.Errorf("store %s key: %w", provider, err))
	}
	fmt.Printf("stored %s key %s\n", provider, mask(key))
}

// mask keeps the last four characters.
func mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "geminikey:", err)
	os.Exit(1)
}
