package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"flatify/internal/adapter/repo"
	"flatify/internal/config"
	"flatify/internal/history"
	"flatify/internal/http/handlers"
	httpapi "flatify/internal/http/httpapi"
	"flatify/internal/imagegen"
	"flatify/internal/infra"
	"flatify/internal/infra/credentials"
	"flatify/internal/infra/google"
	"flatify/internal/providers/genai"
	"flatify/internal/providers/prompt"
	"flatify/internal/sqlinline"
	"flatify/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	sqlRunner := infra.NewSQLRunner(dbpool, infra.Component(logger, "sql"))
	schemaCtx, cancelSchema := context.WithTimeout(ctx, 30*time.Second)
	if _, err := sqlRunner.Exec(schemaCtx, sqlinline.QEnsureSchema); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}
	cancelSchema()

	creds := credentials.NewStore(sqlRunner)
	geminiKey, err := creds.Resolve(ctx, credentials.ProviderGemini, cfg.GeminiAPIKey)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load stored gemini key")
	}
	httpClient := &http.Client{Timeout: cfg.ModelTimeout}
	genaiLogger := infra.Component(logger, "genai")
	gemini, err := genai.NewClient(ctx, genai.Options{
		APIKey:     geminiKey,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: httpClient,
		Logger:     &genaiLogger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure gemini client")
	}

	geminiModel, err := prompt.NewGeminiModel(gemini, cfg.GeminiTextModel, cfg.GeminiVisionModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure gemini text model")
	}
	var textModel prompt.TextModel = geminiModel
	var visionModel prompt.VisionModel = geminiModel
	providerName := geminiModel.Provider()
	if cfg.PromptProvider == prompt.ProviderOpenAI {
		openaiKey, err := creds.Resolve(ctx, credentials.ProviderOpenAI, cfg.OpenAIAPIKey)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load stored openai key")
		}
		openaiModel, err := prompt.NewOpenAIModel(prompt.OpenAIOptions{
			APIKey:     openaiKey,
			Model:      cfg.OpenAIModel,
			BaseURL:    cfg.OpenAIBaseURL,
			HTTPClient: httpClient,
			OnWarning: func(reason, detail string) {
				logger.Warn().Str("reason", reason).Str("detail", detail).Msg("openai model adjusted")
			},
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure openai model")
		}
		textModel, visionModel = openaiModel, openaiModel
		providerName = openaiModel.Provider()
	}

	imageLogger := infra.Component(logger, "imagegen")
	logos, err := imagegen.NewClient(imagegen.Options{
		Generator:  gemini,
		Text:       textModel,
		ImageModel: cfg.GeminiImageModel,
		Logger:     &imageLogger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure image generation")
	}
	suggestLogger := infra.Component(logger, "suggest")
	suggester := prompt.NewSuggester(textModel, visionModel, &suggestLogger)

	kv, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.KVBackend).Msg("failed to open key/value store")
	}
	defer kv.Close()

	catalog, err := config.LoadCatalog(cfg.StyleCatalogPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load style catalog")
	}

	app := &handlers.App{
		Config:      cfg,
		Logger:      logger,
		Users:       repo.NewUserRepository(sqlRunner),
		Generations: repo.NewGenerationRepository(sqlRunner),
		Sessions:    storage.NewSessionStore(kv, cfg.SessionTTL),
		History: &history.Resolver{
			Server: repo.NewHistoryRepository(sqlRunner),
			Local:  history.NewLocalBackend(kv, cfg.SessionTTL),
		},
		Logos:         logos,
		Suggestions:   suggester,
		Catalog:       catalog,
		JWTSecret:     cfg.JWTSecret,
		WebhookSecret: cfg.WebhookSecret,
	}
	if cfg.GoogleClientID != "" {
		app.GoogleVerifier = google.NewVerifier(cfg.GoogleIssuer, cfg.GoogleClientID)
	} else {
		logger.Warn().Msg("GOOGLE_CLIENT_ID not set, google sign-in disabled")
	}

	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("kv", cfg.KVBackend).Str("prompt_provider", providerName).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
