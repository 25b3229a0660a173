package prompt

import "context"

// TextModel completes a single text prompt.
type TextModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// VisionModel answers a text prompt about one attached image.
type VisionModel interface {
	Describe(ctx context.Context, prompt, mimeType string, image []byte) (string, error)
}
