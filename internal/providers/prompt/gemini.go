package prompt

import (
	"context"
	"errors"
	"strings"

	"flatify/internal/middleware"
	"flatify/internal/providers/genai"
)

// GeminiModel adapts the Gemini client to TextModel and VisionModel. Text
// calls use textModel and image calls use visionModel.
type GeminiModel struct {
	client      *genai.Client
	textModel   string
	visionModel string
}

func NewGeminiModel(client *genai.Client, textModel, visionModel string) (*GeminiModel, error) {
	if client == nil {
		return nil, errors.New("prompt: gemini client is required")
	}
	return &GeminiModel{
		client:      client,
		textModel:   coalesce(textModel, "gemini-1.5-flash"),
		visionModel: coalesce(visionModel, "gemini-2.0-flash"),
	}, nil
}

var (
	_ TextModel   = (*GeminiModel)(nil)
	_ VisionModel = (*GeminiModel)(nil)
)

func (g *GeminiModel) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.GenerateContent(ctx, genai.Request{
		Model:      g.textModel,
		Parts:      []genai.Part{genai.TextPart(prompt)},
		Modalities: []string{genai.ModalityText},
		RequestID:  middleware.RequestIDFromContext(ctx),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

func (g *GeminiModel) Describe(ctx context.Context, prompt, mimeType string, image []byte) (string, error) {
	resp, err := g.client.GenerateContent(ctx, genai.Request{
		Model: g.visionModel,
		Parts: []genai.Part{
			genai.TextPart(prompt),
			genai.InlinePart(mimeType, image),
		},
		RequestID: middleware.RequestIDFromContext(ctx),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

// Provider names the backing service.
func (g *GeminiModel) Provider() string { return ProviderGemini }
