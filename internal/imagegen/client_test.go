package imagegen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flatify/internal/domain"
	"flatify/internal/domain/jsoncfg"
	"flatify/internal/middleware"
	"flatify/internal/providers/genai"
)

type fakeGenerator struct {
	resp *genai.Response
	err  error
	reqs []genai.Request
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, req genai.Request) (*genai.Response, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeText struct {
	out    string
	err    error
	prompt string
}

func (f *fakeText) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.out, f.err
}

func newClient(t *testing.T, gen *fakeGenerator, text *fakeText) *Client {
	t.Helper()
	opts := Options{Generator: gen}
	if text != nil {
		opts.Text = text
	}
	c, err := NewClient(opts)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c
}

func TestGenerateFromTextReturnsDataURI(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.Response{Media: []genai.Media{{MIMEType: "image/png", Data: []byte{0, 0, 0}}}}}
	c := newClient(t, gen, nil)

	uri, err := c.GenerateFromText(context.Background(), "Acme", "desc")
	if err != nil {
		t.Fatalf("GenerateFromText error: %v", err)
	}
	if uri != "data:image/png;base64,AAAA" {
		t.Fatalf("uri = %q", uri)
	}

	req := gen.reqs[0]
	if req.Model != DefaultImageModel {
		t.Fatalf("model = %q", req.Model)
	}
	if strings.Join(req.Modalities, ",") != "TEXT,IMAGE" {
		t.Fatalf("modalities = %v", req.Modalities)
	}
	if req.Parts[0].Text != BuildInitialPrompt("Acme", "desc") {
		t.Fatalf("prompt = %q", req.Parts[0].Text)
	}
}

func TestGenerateFromTextCarriesRequestID(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.Response{Media: []genai.Media{{MIMEType: "image/png", Data: []byte{1}}}}}
	ctx := middleware.ContextWithRequestID(context.Background(), "req-42")
	if _, err := newClient(t, gen, nil).GenerateFromText(ctx, "Acme", "desc"); err != nil {
		t.Fatalf("GenerateFromText error: %v", err)
	}
	if gen.reqs[0].RequestID != "req-42" {
		t.Fatalf("RequestID = %q, want req-42", gen.reqs[0].RequestID)
	}
}

func TestGenerateFromTextWithMalformedMIMEFails(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.Response{Media: []genai.Media{{MIMEType: "png", Data: []byte{1}}}}}
	_, err := newClient(t, gen, nil).GenerateFromText(context.Background(), "Acme", "desc")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("error = %v, want ErrGenerationFailed", err)
	}
}

func TestGenerateFromTextWithoutMediaFails(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.Response{Text: "I cannot draw that"}}
	_, err := newClient(t, gen, nil).GenerateFromText(context.Background(), "Acme", "desc")
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("error = %v, want ErrGenerationFailed", err)
	}
}

func TestGenerateFromTextPropagatesTransportError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("gemini status 429: quota exceeded")}
	_, err := newClient(t, gen, nil).GenerateFromText(context.Background(), "Acme", "desc")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error = %v", err)
	}
	if errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatal("transport errors must not be reported as empty output")
	}
}

func TestGenerateFromImageAttachesSource(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.Response{Media: []genai.Media{{MIMEType: "image/png", Data: []byte{1}}}}}
	c := newClient(t, gen, nil)

	_, err := c.GenerateFromImage(context.Background(), jsoncfg.SimilarForm{
		SourceImageURI:      "data:image/jpeg;base64,/9j/AA==",
		BusinessName:        "Acme",
		BusinessDescription: "desc",
	})
	if err != nil {
		t.Fatalf("GenerateFromImage error: %v", err)
	}
	parts := gen.reqs[0].Parts
	if len(parts) != 2 || parts[0].MIMEType != "image/jpeg" || len(parts[0].Data) == 0 {
		t.Fatalf("source image not attached first: %+v", parts)
	}
	if !strings.Contains(parts[1].Text, "Analyze the provided image") {
		t.Fatalf("instruction = %q", parts[1].Text)
	}
}

func TestGenerateFromImageRejectsMalformedSource(t *testing.T) {
	gen := &fakeGenerator{}
	_, err := newClient(t, gen, nil).GenerateFromImage(context.Background(), jsoncfg.SimilarForm{SourceImageURI: "nope"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if len(gen.reqs) != 0 {
		t.Fatal("model called for malformed input")
	}
}

func TestRefineLogoWithoutMediaFails(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.Response{}}
	_, err := newClient(t, gen, nil).RefineLogo(context.Background(), "data:image/png;base64,AAAA", "make it blue")
	if !errors.Is(err, domain.ErrRefinementFailed) {
		t.Fatalf("error = %v, want ErrRefinementFailed", err)
	}
}

func TestRefinePrompt(t *testing.T) {
	text := &fakeText{out: "Refined Prompt: A minimalist fox head, bold orange geometry"}
	got, err := newClient(t, &fakeGenerator{}, text).RefinePrompt(context.Background(), "fox logo")
	if err != nil {
		t.Fatalf("RefinePrompt error: %v", err)
	}
	if got != "A minimalist fox head, bold orange geometry" {
		t.Fatalf("RefinePrompt = %q", got)
	}
	if !strings.Contains(text.prompt, "Original Prompt: fox logo") {
		t.Fatalf("prompt = %q", text.prompt)
	}
}

func TestRefinePromptEmptyOutputFails(t *testing.T) {
	_, err := newClient(t, &fakeGenerator{}, &fakeText{out: "  "}).RefinePrompt(context.Background(), "fox logo")
	if !errors.Is(err, domain.ErrRefinementFailed) {
		t.Fatalf("error = %v, want ErrRefinementFailed", err)
	}
}
