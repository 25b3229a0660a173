package genai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gemini "google.golang.org/genai"

	"flatify/internal/infra"
)

// Response modalities understood by generateContent.
const (
	ModalityText  = "TEXT"
	ModalityImage = "IMAGE"
)

const defaultAPIVersion = "v1beta"

// ErrMissingAPIKey is returned when no Gemini key was configured or stored.
var ErrMissingAPIKey = errors.New("genai: api key is not configured")

// Options controls how the Gemini client is configured. BaseURL may carry
// the API version as its last path segment ("https://host/v1beta").
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client wraps the Gemini SDK. The model is chosen per request so one client
// serves the image, text and vision models.
type Client struct {
	sdk    *gemini.Client
	logger *infra.Logger
}

// Part is one input part: either text or inline binary data.
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

// TextPart builds a text input part.
func TextPart(s string) Part { return Part{Text: s} }

// InlinePart builds an inline data part.
func InlinePart(mimeType string, data []byte) Part { return Part{MIMEType: mimeType, Data: data} }

// Request is a single-turn generateContent call.
type Request struct {
	Model      string
	Parts      []Part
	Modalities []string
	RequestID  string
}

// Media is one binary output part.
type Media struct {
	MIMEType string
	Data     []byte
}

// Response collects the text and media parts of the first candidate that
// produced any output.
type Response struct {
	Text         string
	Media        []Media
	FinishReason string
}

// FirstMedia returns the first media part, if any.
func (r *Response) FirstMedia() (Media, bool) {
	if r == nil || len(r.Media) == 0 {
		return Media{}, false
	}
	return r.Media[0], true
}

// NewClient builds the SDK client. Without an API key the client is still
// returned and every call fails with ErrMissingAPIKey, so the service can
// start before a key is stored.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		l := infra.Logger(zerolog.New(io.Discard))
		logger = &l
	}
	c := &Client{logger: logger}

	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return c, nil
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	baseURL, version := splitBaseURL(opts.BaseURL)
	sdk, err := gemini.NewClient(ctx, &gemini.ClientConfig{
		APIKey:     key,
		Backend:    gemini.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: gemini.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: version,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("genai: new client: %w", err)
	}
	c.sdk = sdk
	return c, nil
}

// splitBaseURL separates a trailing "/v1" or "/v1beta" from the host URL.
func splitBaseURL(raw string) (string, string) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", defaultAPIVersion
	}
	if i := strings.LastIndex(raw, "/"); i > 0 {
		if last := raw[i+1:]; strings.HasPrefix(last, "v1") {
			return raw[:i] + "/", last
		}
	}
	return raw + "/", defaultAPIVersion
}

// GenerateContent sends one request and returns whatever text and media the
// model produced. An empty response is not an error here; callers decide
// what counts as usable output.
func (c *Client) GenerateContent(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.sdk == nil {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, errors.New("genai: model is required")
	}
	if len(req.Parts) == 0 {
		return nil, errors.New("genai: at least one part is required")
	}

	contents := []*gemini.Content{gemini.NewContentFromParts(toSDKParts(req.Parts), gemini.RoleUser)}
	var cfg *gemini.GenerateContentConfig
	if len(req.Modalities) > 0 {
		cfg = &gemini.GenerateContentConfig{ResponseModalities: req.Modalities}
	}

	started := time.Now()
	raw, err := c.sdk.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("request_id", req.RequestID).
			Str("model", req.Model).
			Msg("genai: generateContent failed")
		return nil, fmt.Errorf("genai: generateContent: %w", err)
	}

	out := fromSDKResponse(raw)
	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", req.Model).
		Int("media", len(out.Media)).
		Int("text_len", len(out.Text)).
		Str("finish_reason", out.FinishReason).
		Dur("elapsed", time.Since(started)).
		Msg("genai: generateContent ok")
	return out, nil
}

func toSDKParts(parts []Part) []*gemini.Part {
	out := make([]*gemini.Part, 0, len(parts))
	for _, p := range parts {
		if len(p.Data) > 0 {
			out = append(out, gemini.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		out = append(out, gemini.NewPartFromText(p.Text))
	}
	return out
}

func fromSDKResponse(raw *gemini.GenerateContentResponse) *Response {
	out := &Response{}
	if raw == nil {
		return out
	}
	for _, cand := range raw.Candidates {
		if cand == nil {
			continue
		}
		out.FinishReason = string(cand.FinishReason)
		if cand.Content == nil {
			continue
		}
		var text []string
		for _, part := range cand.Content.Parts {
			switch {
			case part == nil:
			case part.InlineData != nil && len(part.InlineData.Data) > 0:
				out.Media = append(out.Media, Media{
					MIMEType: firstNonEmpty(part.InlineData.MIMEType, "image/png"),
					Data:     part.InlineData.Data,
				})
			case part.Text != "":
				text = append(text, part.Text)
			}
		}
		out.Text = strings.Join(text, "")
		if out.Text != "" || len(out.Media) > 0 {
			break
		}
	}
	if out.FinishReason == "" && raw.PromptFeedback != nil {
		out.FinishReason = string(raw.PromptFeedback.BlockReason)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
