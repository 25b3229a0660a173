package imagegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"flatify/internal/domain"
	"flatify/internal/domain/jsoncfg"
	"flatify/internal/infra"
	"flatify/internal/middleware"
	"flatify/internal/providers/genai"
	"flatify/internal/providers/prompt"
	"flatify/pkg/datauri"
)

// DefaultImageModel is the Gemini model able to return image parts.
const DefaultImageModel = "gemini-2.0-flash-exp"

// ContentGenerator is the subset of the Gemini client used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req genai.Request) (*genai.Response, error)
}

// Options configures a Client.
type Options struct {
	Generator  ContentGenerator
	Text       prompt.TextModel
	ImageModel string
	Logger     *infra.Logger
}

// Client produces and refines logos. Every call is a single attempt.
type Client struct {
	gen        ContentGenerator
	text       prompt.TextModel
	imageModel string
	logger     infra.Logger
}

func NewClient(opts Options) (*Client, error) {
	if opts.Generator == nil {
		return nil, errors.New("imagegen: content generator is required")
	}
	c := &Client{
		gen:        opts.Generator,
		text:       opts.Text,
		imageModel: coalesce(opts.ImageModel, DefaultImageModel),
	}
	if opts.Logger != nil {
		c.logger = *opts.Logger
	} else {
		c.logger = zerolog.New(io.Discard)
	}
	return c, nil
}

// GenerateFromText renders a logo from a business name and description and
// returns it as a data URI.
func (c *Client) GenerateFromText(ctx context.Context, businessName, description string) (string, error) {
	parts := []genai.Part{genai.TextPart(BuildInitialPrompt(businessName, description))}
	return c.generateImage(ctx, parts, domain.ErrGenerationFailed)
}

// GenerateFromImage renders a new logo inspired by the form's source image.
func (c *Client) GenerateFromImage(ctx context.Context, form jsoncfg.SimilarForm) (string, error) {
	src, err := datauri.Parse(form.SourceImageURI)
	if err != nil {
		return "", fmt.Errorf("%w: sourceImageUri: %v", domain.ErrValidation, err)
	}
	parts := []genai.Part{
		genai.InlinePart(src.MIMEType, src.Data),
		genai.TextPart(BuildSimilarInstruction(form)),
	}
	return c.generateImage(ctx, parts, domain.ErrGenerationFailed)
}

// RefineLogo returns a revised version of an existing logo.
func (c *Client) RefineLogo(ctx context.Context, existingDataURI, instruction string) (string, error) {
	src, err := datauri.Parse(existingDataURI)
	if err != nil {
		return "", fmt.Errorf("%w: logoDataUri: %v", domain.ErrValidation, err)
	}
	parts := []genai.Part{
		genai.InlinePart(src.MIMEType, src.Data),
		genai.TextPart(BuildRefineLogoInstruction(instruction)),
	}
	return c.generateImage(ctx, parts, domain.ErrRefinementFailed)
}

// RefinePrompt rewrites a raw prompt through the text model.
func (c *Client) RefinePrompt(ctx context.Context, original string) (string, error) {
	if strings.TrimSpace(original) == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}
	if c.text == nil {
		return "", errors.New("imagegen: text model is not configured")
	}
	raw, err := c.text.Complete(ctx, BuildRefinePromptInstruction(original))
	if err != nil {
		return "", fmt.Errorf("refine prompt: %w", err)
	}
	refined := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Refined Prompt:"))
	if refined == "" {
		return "", domain.ErrRefinementFailed
	}
	return refined, nil
}

func (c *Client) generateImage(ctx context.Context, parts []genai.Part, noMedia error) (string, error) {
	resp, err := c.gen.GenerateContent(ctx, genai.Request{
		Model:      c.imageModel,
		Parts:      parts,
		Modalities: []string{genai.ModalityText, genai.ModalityImage},
		RequestID:  middleware.RequestIDFromContext(ctx),
	})
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", c.imageModel, err)
	}
	media, ok := resp.FirstMedia()
	if !ok {
		c.logger.Warn().
			Str("model", c.imageModel).
			Str("finish_reason", resp.FinishReason).
			Int("text_len", len(resp.Text)).
			Msg("imagegen: response carried no image")
		return "", noMedia
	}
	uri, err := datauri.Format(media.MIMEType, media.Data)
	if err != nil {
		c.logger.Warn().Err(err).Str("model", c.imageModel).Msg("imagegen: unusable image part")
		return "", fmt.Errorf("%w: %v", noMedia, err)
	}
	return uri, nil
}
