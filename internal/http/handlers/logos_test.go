package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"flatify/internal/config"
	"flatify/internal/domain"
	"flatify/internal/http/httpapi"
)

func TestHealthAndOptions(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, request{method: http.MethodGet, path: "/v1/healthz"})
	if rec.Code != http.StatusOK || !body.Success {
		t.Fatalf("healthz = %d %+v", rec.Code, body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing request id header")
	}

	rec, body = env.do(t, request{method: http.MethodGet, path: "/v1/options"})
	if rec.Code != http.StatusOK {
		t.Fatalf("options status = %d", rec.Code)
	}
	cat := decodeData[config.Catalog](t, body)
	if cat.DefaultLayout != "Icon Above Text" || len(cat.Fonts) == 0 {
		t.Fatalf("catalog = %+v", cat)
	}
}

func TestGenerateNoviceBuildsDescriptionAndRecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	sid := env.newSession(t)

	rec, body := env.do(t, request{
		method:  http.MethodPost,
		path:    "/v1/logos/novice",
		session: sid,
		body: map[string]string{
			"businessName":        "Acme",
			"businessDescription": "Organic bakery",
			"primaryColor":        "ff0000",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	out := decodeData[map[string]string](t, body)
	if out["logoDataUri"] != pngURI {
		t.Fatalf("logo = %q", out["logoDataUri"])
	}
	desc := out["businessDescription"]
	for _, want := range []string{"Organic bakery", "#FF0000 (primary)", "any complementary color (secondary)", "Icon Above Text", "flat design"} {
		if !strings.Contains(desc, want) {
			t.Fatalf("description %q missing %q", desc, want)
		}
	}
	if !strings.HasPrefix(env.logos.lastIn, "Acme|") {
		t.Fatalf("model input = %q", env.logos.lastIn)
	}

	rec, body = env.do(t, request{method: http.MethodGet, path: "/v1/prompt-history", session: sid})
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	hist := decodeData[map[string][]string](t, body)["promptHistory"]
	if len(hist) != 1 || hist[0] != desc {
		t.Fatalf("history = %v", hist)
	}
}

func TestModelRoutesThrottleOnlyWhenConfigured(t *testing.T) {
	send := func(env *testEnv, n int) []int {
		codes := make([]int, 0, n)
		for i := 0; i < n; i++ {
			rec, _ := env.do(t, request{
				method: http.MethodPost,
				path:   "/v1/logos/novice",
				body:   map[string]string{"businessName": "Acme", "businessDescription": "Bakery"},
			})
			codes = append(codes, rec.Code)
		}
		return codes
	}

	env := newTestEnv(t)
	env.app.Config.ModelRateLimit = 0
	env.router = httpapi.NewRouter(env.app)
	for i, code := range send(env, 25) {
		if code != http.StatusOK {
			t.Fatalf("request %d with limiter disabled: status %d", i, code)
		}
	}

	env = newTestEnv(t)
	env.app.Config.ModelRateLimit = 3
	env.router = httpapi.NewRouter(env.app)
	codes := send(env, 4)
	if codes[2] != http.StatusOK || codes[3] != http.StatusTooManyRequests {
		t.Fatalf("codes with limit 3 = %v", codes)
	}
}

func TestGenerateNoviceValidatesBeforeCallingModel(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, request{
		method: http.MethodPost,
		path:   "/v1/logos/novice",
		body:   map[string]string{"businessName": "Acme"},
	})
	if rec.Code != http.StatusBadRequest || body.Success {
		t.Fatalf("status = %d body %+v", rec.Code, body)
	}
	if env.logos.calls != 0 {
		t.Fatalf("model called %d times", env.logos.calls)
	}

	rec, _ = env.do(t, request{method: http.MethodPost, path: "/v1/logos/novice", body: "{not json"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d", rec.Code)
	}
}

func TestGenerationFailureMapsToBadGateway(t *testing.T) {
	env := newTestEnv(t)
	env.logos.err = domain.ErrGenerationFailed
	token, userID := env.signIn(t)

	rec, body := env.do(t, request{
		method: http.MethodPost,
		path:   "/v1/logos/professional",
		token:  token,
		body:   map[string]any{"prompt": "a fox logo named 'Red Fox'"},
	})
	if rec.Code != http.StatusBadGateway || body.Success {
		t.Fatalf("status = %d body %+v", rec.Code, body)
	}
	if len(env.server.lists[userID]) != 0 {
		t.Fatalf("history appended on failure: %v", env.server.lists[userID])
	}
	if len(env.generations.records) != 0 {
		t.Fatal("record persisted on failure")
	}
}

func TestGenerateProfessionalUsesRefinedPrompt(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.signIn(t)

	rec, body := env.do(t, request{
		method: http.MethodPost,
		path:   "/v1/logos/professional",
		token:  token,
		body: map[string]any{
			"prompt":        "fox",
			"refinedPrompt": "a geometric fox for a studio named 'Red Fox'",
			"useRefined":    true,
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	out := decodeData[map[string]string](t, body)
	if out["usedPrompt"] != "a geometric fox for a studio named 'Red Fox'" {
		t.Fatalf("usedPrompt = %q", out["usedPrompt"])
	}
	if !strings.HasPrefix(env.logos.lastIn, "Red Fox|") {
		t.Fatalf("model input = %q", env.logos.lastIn)
	}
	if got := env.server.lists[userID]; len(got) != 1 || got[0] != out["usedPrompt"] {
		t.Fatalf("server history = %v", got)
	}
}

func TestRefineEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, request{method: http.MethodPost, path: "/v1/prompts/refine", body: map[string]string{"prompt": "fox"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("refine prompt status = %d", rec.Code)
	}
	if got := decodeData[map[string]string](t, body)["refinedPrompt"]; got != "A bold geometric fox" {
		t.Fatalf("refinedPrompt = %q", got)
	}

	rec, _ = env.do(t, request{method: http.MethodPost, path: "/v1/logos/refine", body: map[string]string{"logoDataUri": pngURI}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("refine logo without instruction status = %d", rec.Code)
	}

	env.logos.err = domain.ErrRefinementFailed
	rec, _ = env.do(t, request{method: http.MethodPost, path: "/v1/logos/refine", body: map[string]string{
		"logoDataUri": pngURI, "refinementPrompt": "make it blue",
	}})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("refine logo failure status = %d", rec.Code)
	}
}

func TestGenerateSimilar(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, request{method: http.MethodPost, path: "/v1/logos/similar", body: map[string]string{
		"sourceImageUri":      pngURI,
		"businessName":        "Acme",
		"businessDescription": "Bakery",
	}})
	if rec.Code != http.StatusOK || !body.Success {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if env.logos.lastIn != "Acme" {
		t.Fatalf("model input = %q", env.logos.lastIn)
	}
}

func TestSuggestions(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, request{method: http.MethodPost, path: "/v1/suggestions", body: map[string]string{
		"businessName": "Acme", "type": "color",
	}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	s := decodeData[domain.Suggestion](t, body)
	if s.Shape != domain.ShapeList || len(s.Items) != 3 || s.Items[0] != "#FF5733" {
		t.Fatalf("suggestion = %+v", s)
	}

	rec, _ = env.do(t, request{method: http.MethodPost, path: "/v1/suggestions", body: map[string]string{
		"businessName": "Acme", "type": "mascot",
	}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid type status = %d", rec.Code)
	}
	if env.suggestions.calls != 1 {
		t.Fatalf("suggester calls = %d, want 1", env.suggestions.calls)
	}

	rec, body = env.do(t, request{method: http.MethodPost, path: "/v1/suggestions/image", body: map[string]string{
		"sourceImageUri": pngURI, "type": "name",
	}})
	if rec.Code != http.StatusOK {
		t.Fatalf("image suggestion status = %d", rec.Code)
	}
	s = decodeData[domain.Suggestion](t, body)
	if s.Shape != domain.ShapeSingle || s.Value != "Sunrise Bakery" || s.Type != domain.SuggestionNameFromImage {
		t.Fatalf("image suggestion = %+v", s)
	}
}
