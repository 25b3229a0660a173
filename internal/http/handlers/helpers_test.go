package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"flatify/internal/config"
	"flatify/internal/domain"
	"flatify/internal/domain/jsoncfg"
	"flatify/internal/history"
	handlers "flatify/internal/http/handlers"
	"flatify/internal/http/httpapi"
	"flatify/internal/infra"
	"flatify/internal/infra/google"
	"flatify/internal/middleware"
	"flatify/internal/storage"
)

const (
	testSecret        = "test-secret"
	testWebhookSecret = "whsec_c2VjcmV0LWtleQ=="
	pngURI            = "data:image/png;base64,iVBORw0KGgo="
)

type fakeLogos struct {
	mu      sync.Mutex
	logo    string
	err     error
	calls   int
	lastIn  string
	refined string
}

func (f *fakeLogos) record(in string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastIn = in
	return f.logo, f.err
}

func (f *fakeLogos) GenerateFromText(ctx context.Context, businessName, description string) (string, error) {
	return f.record(businessName + "|" + description)
}

func (f *fakeLogos) GenerateFromImage(ctx context.Context, form jsoncfg.SimilarForm) (string, error) {
	return f.record(form.BusinessName)
}

func (f *fakeLogos) RefineLogo(ctx context.Context, existingDataURI, instruction string) (string, error) {
	return f.record(instruction)
}

func (f *fakeLogos) RefinePrompt(ctx context.Context, original string) (string, error) {
	if _, err := f.record(original); err != nil {
		return "", err
	}
	return f.refined, nil
}

type fakeSuggestions struct {
	calls int
}

func (f *fakeSuggestions) Suggest(ctx context.Context, businessName string, kind domain.SuggestionType) (domain.Suggestion, error) {
	f.calls++
	return domain.ListSuggestion(kind, []string{"#FF5733", "#33FF57", "#3357FF"}), nil
}

func (f *fakeSuggestions) SuggestFromImage(ctx context.Context, sourceDataURI string, kind domain.SuggestionType) (domain.Suggestion, error) {
	f.calls++
	return domain.SingleSuggestion(kind, "Sunrise Bakery"), nil
}

type fakeVerifier struct {
	token *google.IDToken
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*google.IDToken, error) {
	if token != "good-token" {
		return nil, domain.ErrUnauthorized
	}
	return f.token, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	byExt map[string]*domain.User
}

func (f *fakeUsers) UpsertByExternalID(ctx context.Context, u *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ExternalID == "" || u.Email == "" {
		return nil, domain.ErrValidation
	}
	if existing, ok := f.byExt[u.ExternalID]; ok {
		existing.Email, existing.Name, existing.Picture = u.Email, u.Name, u.Picture
		cp := *existing
		return &cp, nil
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f.byExt[u.ExternalID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byExt {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeGenerations keys records by kind, owner and logo so re-saves dedupe.
type fakeGenerations struct {
	mu      sync.Mutex
	records []domain.Generation
	err     error
	clock   time.Time
}

func (f *fakeGenerations) Create(ctx context.Context, gen domain.Generation) (domain.Generation, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Generation{}, false, f.err
	}
	if gen.LogoDataURI() == "" {
		return domain.Generation{}, false, domain.ErrValidation
	}
	for _, g := range f.records {
		if g.Kind == gen.Kind && g.Owner() == gen.Owner() && g.LogoDataURI() == gen.LogoDataURI() {
			return g, false, nil
		}
	}
	f.clock = f.clock.Add(time.Second)
	id := uuid.NewString()
	switch gen.Kind {
	case domain.KindNovice:
		cp := *gen.Novice
		cp.ID, cp.CreatedAt = id, f.clock
		gen.Novice = &cp
	case domain.KindProfessional:
		cp := *gen.Professional
		cp.ID, cp.CreatedAt = id, f.clock
		gen.Professional = &cp
	case domain.KindImageEditor:
		cp := *gen.ImageEditor
		cp.ID, cp.CreatedAt = id, f.clock
		gen.ImageEditor = &cp
	}
	f.records = append(f.records, gen)
	return gen, true, nil
}

func (f *fakeGenerations) ListByOwner(ctx context.Context, kind domain.Kind, ownerID string) ([]domain.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Generation{}
	for i := len(f.records) - 1; i >= 0; i-- {
		g := f.records[i]
		if g.Kind == kind && g.Owner() == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGenerations) DeleteByIDAndOwner(ctx context.Context, kind domain.Kind, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, g := range f.records {
		if g.Kind == kind && g.ID() == id && g.Owner() == ownerID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFoundOrForbidden
}

type fakeServerHistory struct {
	mu    sync.Mutex
	lists map[string][]string
}

func (f *fakeServerHistory) Get(ctx context.Context, owner string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.lists[owner]...), nil
}

func (f *fakeServerHistory) Append(ctx context.Context, owner, prompt string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[owner] = history.Push(f.lists[owner], prompt, history.ServerLimit)
	return append([]string{}, f.lists[owner]...), nil
}

func (f *fakeServerHistory) Clear(ctx context.Context, owner string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[owner] = []string{}
	return nil
}

type testEnv struct {
	app         *handlers.App
	router      http.Handler
	logos       *fakeLogos
	suggestions *fakeSuggestions
	users       *fakeUsers
	generations *fakeGenerations
	server      *fakeServerHistory
	local       *history.LocalBackend
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv := storage.NewMemoryKV()
	env := &testEnv{
		logos:       &fakeLogos{logo: pngURI, refined: "A bold geometric fox"},
		suggestions: &fakeSuggestions{},
		users:       &fakeUsers{byExt: map[string]*domain.User{}},
		generations: &fakeGenerations{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		server:      &fakeServerHistory{lists: map[string][]string{}},
		local:       history.NewLocalBackend(kv, time.Hour),
	}
	env.app = &handlers.App{
		Config:      &infra.Config{AppEnv: "test", JWTSecret: testSecret, ModelRateLimit: 100},
		Logger:      zerolog.New(io.Discard),
		Users:       env.users,
		Generations: env.generations,
		Sessions:    storage.NewSessionStore(kv, time.Hour),
		History:     &history.Resolver{Server: env.server, Local: env.local},
		Logos:       env.logos,
		Suggestions: env.suggestions,
		GoogleVerifier: &fakeVerifier{token: &google.IDToken{
			Subject: "google-123", Email: "owner@example.com", Name: "Owner",
		}},
		Catalog:       config.DefaultCatalog(),
		JWTSecret:     testSecret,
		WebhookSecret: testWebhookSecret,
	}
	env.router = httpapi.NewRouter(env.app)
	return env
}

type request struct {
	method  string
	path    string
	body    any
	token   string
	session string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (e *testEnv) do(t *testing.T, req request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var body io.Reader = http.NoBody
	switch b := req.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(req.method, req.path, body)
	r.Header.Set("Content-Type", "application/json")
	if req.token != "" {
		r.Header.Set("Authorization", "Bearer "+req.token)
	}
	if req.session != "" {
		r.Header.Set(middleware.SessionHeader, req.session)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func (e *testEnv) signIn(t *testing.T) (token, userID string) {
	t.Helper()
	u, err := e.users.UpsertByExternalID(context.Background(), &domain.User{
		ExternalID: "ext-" + uuid.NewString(), Email: "user@example.com",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err = middleware.SignJWT(testSecret, middleware.TokenClaims{
		Sub: u.ID, Exp: time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token, u.ID
}

func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	rec, env := e.do(t, request{method: http.MethodPost, path: "/v1/session"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d", rec.Code)
	}
	var sess domain.Session
	if err := json.Unmarshal(env.Data, &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return sess.ID
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
	return out
}
