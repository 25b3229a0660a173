// Package datauri reads and writes the inline image encoding used for every
// logo the service stores: data:<mime-type>;base64,<payload>.
package datauri

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

var (
	ErrMalformed   = errors.New("malformed data uri")
	ErrNotBase64   = errors.New("data uri is not base64 encoded")
	ErrEmptyBody   = errors.New("data uri has no payload")
	ErrMissingMIME = errors.New("data uri has no mime type")
	ErrInvalidMIME = errors.New("invalid mime type")
)

// Blob is a decoded data URI.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Parse decodes s. Only base64 payloads with an explicit media type are
// accepted.
func Parse(s string) (Blob, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(s), "data:") {
		return Blob{}, ErrMalformed
	}
	header, payload, ok := strings.Cut(s, ",")
	if !ok {
		return Blob{}, ErrMalformed
	}
	if !strings.HasSuffix(strings.ToLower(header), ";base64") {
		return Blob{}, ErrNotBase64
	}
	if strings.HasPrefix(header[len("data:"):], ";") {
		return Blob{}, ErrMissingMIME
	}
	if strings.TrimSpace(payload) == "" {
		return Blob{}, ErrEmptyBody
	}
	du, err := dataurl.DecodeString(s)
	if err != nil {
		return Blob{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if du.Encoding != dataurl.EncodingBase64 {
		return Blob{}, ErrNotBase64
	}
	if len(du.Data) == 0 {
		return Blob{}, ErrEmptyBody
	}
	return Blob{MIMEType: du.ContentType(), Data: du.Data}, nil
}

// Validate reports whether s is a well-formed base64 data URI.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}

// IsImage reports whether s is a well-formed data URI carrying an image.
func IsImage(s string) bool {
	b, err := Parse(s)
	return err == nil && strings.HasPrefix(b.MIMEType, "image/")
}

// Format encodes data as a base64 data URI. An empty mime type becomes
// application/octet-stream; anything that is not type/subtype is rejected.
func Format(mimeType string, data []byte) (string, error) {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	mediaType, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidMIME, mimeType, err)
	}
	if kind, sub, ok := strings.Cut(mediaType, "/"); !ok || kind == "" || sub == "" {
		return "", fmt.Errorf("%w %q", ErrInvalidMIME, mimeType)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, params[k])
	}
	return dataurl.New(data, mediaType, pairs...).String(), nil
}

// Extension picks a file extension for a mime type.
func Extension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".bin"
	}
}
