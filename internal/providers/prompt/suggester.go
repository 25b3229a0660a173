package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"flatify/internal/domain"
	"flatify/internal/infra"
	"flatify/pkg/datauri"
)

// Suggester produces naming, copy, colour and icon ideas for the guided
// form.
type Suggester struct {
	text   TextModel
	vision VisionModel
	logger infra.Logger
}

func NewSuggester(text TextModel, vision VisionModel, logger *infra.Logger) *Suggester {
	s := &Suggester{text: text, vision: vision}
	if logger != nil {
		s.logger = *logger
	} else {
		s.logger = zerolog.New(io.Discard)
	}
	return s
}

// Suggest returns 3 to 5 list items for a text category. Unknown or image
// categories fail before the model is called.
func (s *Suggester) Suggest(ctx context.Context, businessName string, kind domain.SuggestionType) (domain.Suggestion, error) {
	instruction, err := listInstruction(businessName, kind)
	if err != nil {
		return domain.Suggestion{}, err
	}
	if strings.TrimSpace(businessName) == "" {
		return domain.Suggestion{}, fmt.Errorf("%w: businessName is required", domain.ErrValidation)
	}
	if s.text == nil {
		return domain.Suggestion{}, errors.New("prompt: text model is not configured")
	}

	raw, err := s.text.Complete(ctx, instruction)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("suggest %s: %w", kind, err)
	}
	items := splitCommaList(raw)
	s.logger.Debug().Str("type", string(kind)).Int("items", len(items)).Msg("prompt: suggestions generated")
	return domain.ListSuggestion(kind, items), nil
}

// SuggestFromImage returns one trimmed answer about the uploaded image.
func (s *Suggester) SuggestFromImage(ctx context.Context, sourceDataURI string, kind domain.SuggestionType) (domain.Suggestion, error) {
	instruction, err := imageInstruction(kind)
	if err != nil {
		return domain.Suggestion{}, err
	}
	blob, err := datauri.Parse(sourceDataURI)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("%w: sourceImageUri: %v", domain.ErrValidation, err)
	}
	if s.vision == nil {
		return domain.Suggestion{}, errors.New("prompt: vision model is not configured")
	}

	raw, err := s.vision.Describe(ctx, instruction, blob.MIMEType, blob.Data)
	if err != nil {
		return domain.Suggestion{}, fmt.Errorf("suggest %s: %w", kind, err)
	}
	return domain.SingleSuggestion(kind, cleanSingle(raw)), nil
}

func listInstruction(businessName string, kind domain.SuggestionType) (string, error) {
	name := strings.TrimSpace(businessName)
	switch kind {
	case domain.SuggestionDescription:
		return fmt.Sprintf("Generate 3-5 brief and creative business descriptions for a business named %q. Each description should be concise and highlight a unique aspect or style. Return them as a comma-separated list.", name), nil
	case domain.SuggestionSlogan:
		return fmt.Sprintf("Generate 3-5 catchy and memorable slogans for a business named %q. Return them as a comma-separated list.", name), nil
	case domain.SuggestionColor:
		return fmt.Sprintf("Suggest 3-5 hex color codes (e.g., #RRGGBB) that would be suitable for a logo for a business named %q. Focus on colors that evoke the business's nature. Return them as a comma-separated list.", name), nil
	case domain.SuggestionIcon:
		return fmt.Sprintf("Suggest 3-5 simple, flat design icon ideas (e.g., \"a stylized leaf\", \"a minimalist gear\") that would be suitable for a logo for a business named %q. Return them as a comma-separated list.", name), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSuggestionType, kind)
	}
}

func imageInstruction(kind domain.SuggestionType) (string, error) {
	switch kind {
	case domain.SuggestionNameFromImage:
		return "Given the following image, suggest a concise and creative business name (2-5 words). Only return the name, no other text.", nil
	case domain.SuggestionDescriptionFromImage:
		return "Given the following image, suggest a brief and compelling business description (1-2 sentences). Only return the description, no other text.", nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSuggestionType, kind)
	}
}
