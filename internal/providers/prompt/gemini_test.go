package prompt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"flatify/internal/providers/genai"
)

func TestGeminiModelRoutesTextAndVisionModels(t *testing.T) {
	var paths []string
	var lastBody map[string]any
	client, err := genai.NewClient(context.Background(), genai.Options{
		APIKey:  "k",
		BaseURL: "https://gemini.test/v1beta",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			paths = append(paths, r.URL.Path)
			lastBody = nil
			_ = json.NewDecoder(r.Body).Decode(&lastBody)
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(strings.NewReader(`{"candidates":[{"content":{"parts":[{"text":" Acme Bakery \n"}]}}]}`)),
			}, nil
		})},
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	model, err := NewGeminiModel(client, "", "")
	if err != nil {
		t.Fatalf("NewGeminiModel error: %v", err)
	}

	text, err := model.Complete(context.Background(), "name ideas")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if text != "Acme Bakery" {
		t.Fatalf("Complete = %q", text)
	}

	if _, err := model.Describe(context.Background(), "describe", "image/png", []byte{1}); err != nil {
		t.Fatalf("Describe error: %v", err)
	}
	contents := lastBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	if len(parts) != 2 {
		t.Fatalf("vision request parts = %d, want 2", len(parts))
	}

	want := []string{
		"/v1beta/models/gemini-1.5-flash:generateContent",
		"/v1beta/models/gemini-2.0-flash:generateContent",
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if !strings.HasSuffix(paths[i], want[i]) {
			t.Fatalf("paths[%d] = %q, want suffix %q", i, paths[i], want[i])
		}
	}
}
