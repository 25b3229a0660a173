package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"flatify/internal/http/handlers"
	"flatify/internal/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	var (
		origins   []string
		modelRate int
	)
	if app.Config != nil {
		origins = app.Config.CORSAllowedOrigins
		modelRate = app.Config.ModelRateLimit
	}

	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(origins),
		middleware.Session,
		middleware.OptionalAuthJWT(app.JWTSecret),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/options", app.Options)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Post("/auth/google", app.AuthGoogle)
		r.Post("/webhooks/user-created", app.UserCreatedWebhook)

		r.Route("/session", func(r chi.Router) {
			r.Post("/", app.CreateSession)
			r.Get("/", app.GetSession)
			r.Put("/role", app.SetRole)
			r.Delete("/role", app.ClearRole)
		})

		r.Route("/prompt-history", func(r chi.Router) {
			r.Get("/", app.GetPromptHistory)
			r.Post("/", app.AppendPromptHistory)
			r.Delete("/", app.ClearPromptHistory)
		})

		// Model-backed routes share one per-caller budget.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(modelRate, time.Minute))
			r.Post("/logos/novice", app.GenerateNovice)
			r.Post("/logos/professional", app.GenerateProfessional)
			r.Post("/logos/similar", app.GenerateSimilar)
			r.Post("/logos/refine", app.RefineLogo)
			r.Post("/prompts/refine", app.RefinePrompt)
			r.Post("/suggestions", app.Suggest)
			r.Post("/suggestions/image", app.SuggestFromImage)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(app.JWTSecret))
			r.Get("/me", app.Me)
			r.Route("/generations/{kind}", func(r chi.Router) {
				r.Get("/", app.ListGenerations)
				r.Post("/", app.SaveGeneration)
				r.Get("/export", app.ExportGenerations)
				r.Delete("/{id}", app.DeleteGeneration)
			})
		})
	})

	return r
}
