package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"flatify/internal/config"
	"flatify/internal/domain"
	"flatify/internal/domain/jsoncfg"
	"flatify/internal/history"
	"flatify/internal/infra"
	"flatify/internal/infra/google"
	"flatify/internal/middleware"
)

// maxBodyBytes bounds JSON bodies; logos travel inline as data URIs.
const maxBodyBytes = 12 << 20

// LogoGenerator calls the image model.
type LogoGenerator interface {
	GenerateFromText(ctx context.Context, businessName, description string) (string, error)
	GenerateFromImage(ctx context.Context, form jsoncfg.SimilarForm) (string, error)
	RefineLogo(ctx context.Context, existingDataURI, instruction string) (string, error)
	RefinePrompt(ctx context.Context, original string) (string, error)
}

// SuggestionService produces form suggestions.
type SuggestionService interface {
	Suggest(ctx context.Context, businessName string, kind domain.SuggestionType) (domain.Suggestion, error)
	SuggestFromImage(ctx context.Context, sourceDataURI string, kind domain.SuggestionType) (domain.Suggestion, error)
}

// IdentityVerifier checks identity-provider ID tokens.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*google.IDToken, error)
}

type App struct {
	Config         *infra.Config
	Logger         infra.Logger
	Users          domain.UserRepository
	Generations    domain.GenerationRepository
	Sessions       domain.SessionRepository
	History        *history.Resolver
	Logos          LogoGenerator
	Suggestions    SuggestionService
	GoogleVerifier IdentityVerifier
	Catalog        config.Catalog
	JWTSecret      string
	WebhookSecret  string
	TokenTTL       time.Duration
	Now            func() time.Time
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) ok(w http.ResponseWriter, code int, data any, msg string) {
	a.json(w, code, envelope{Success: true, Data: data, Message: msg})
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, envelope{Success: false, Message: msg})
}

// fail maps a domain error onto a status code and the response envelope.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidSuggestionType),
		errors.Is(err, domain.ErrInvalidOwnerID):
		a.error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFoundOrForbidden):
		a.error(w, http.StatusNotFound, "record not found or not owned by user")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrGenerationFailed), errors.Is(err, domain.ErrRefinementFailed):
		a.log(r).Warn().Err(err).Msg("model returned no usable output")
		a.error(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrServiceUnavailable), infra.IsUnavailable(err):
		a.log(r).Error().Err(err).Msg("dependency unavailable")
		a.error(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		a.log(r).Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "an internal server error occurred")
	}
}

func (a *App) log(r *http.Request) *infra.Logger {
	l := a.Logger.With().
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("path", r.URL.Path).
		Logger()
	return &l
}

// decode reads a JSON body into v. Unknown fields are ignored.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		}
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	return nil
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) sessionID(r *http.Request) string {
	return middleware.SessionIDFromContext(r.Context())
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) tokenTTL() time.Duration {
	if a.TokenTTL > 0 {
		return a.TokenTTL
	}
	return 24 * time.Hour
}
