package domain

import (
	"strings"
	"time"
)

// Kind selects one of the three generation record shapes.
type Kind string

const (
	KindNovice       Kind = "novice"
	KindProfessional Kind = "professional"
	KindImageEditor  Kind = "image-editor"
)

// ParseKind maps a wire value onto a Kind.
func ParseKind(v string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(v))) {
	case KindNovice:
		return KindNovice, true
	case KindProfessional:
		return KindProfessional, true
	case KindImageEditor, "image_editor", "image":
		return KindImageEditor, true
	default:
		return "", false
	}
}

// NoviceGeneration is a logo produced from the guided form. BusinessDescription
// holds the fully expanded description actually sent to the model.
type NoviceGeneration struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	BusinessName        string    `json:"businessName"`
	BusinessDescription string    `json:"businessDescription"`
	PrimaryColor        string    `json:"primaryColor,omitempty"`
	SecondaryColor      string    `json:"secondaryColor,omitempty"`
	LogoDataURI         string    `json:"logoDataUri"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ProfessionalGeneration is a logo produced from a free-form prompt.
type ProfessionalGeneration struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	OriginalPrompt string    `json:"originalPrompt,omitempty"`
	RefinedPrompt  string    `json:"refinedPrompt,omitempty"`
	UsedPrompt     string    `json:"usedPrompt"`
	LogoDataURI    string    `json:"logoDataUri"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ImageEditorGeneration is a logo remixed from an uploaded source image.
type ImageEditorGeneration struct {
	ID                      string    `json:"id"`
	UserID                  string    `json:"userId"`
	SourceImageURI          string    `json:"sourceImageUri"`
	SourceImageOriginalName string    `json:"sourceImageOriginalName,omitempty"`
	BusinessName            string    `json:"businessName"`
	BusinessDescription     string    `json:"businessDescription"`
	LogoDataURI             string    `json:"logoDataUri"`
	CreatedAt               time.Time `json:"createdAt"`
}

// Generation carries exactly one of the kind-specific records.
type Generation struct {
	Kind         Kind
	Novice       *NoviceGeneration
	Professional *ProfessionalGeneration
	ImageEditor  *ImageEditorGeneration
}

// Owner returns the owning user id of the wrapped record.
func (g Generation) Owner() string {
	switch {
	case g.Novice != nil:
		return g.Novice.UserID
	case g.Professional != nil:
		return g.Professional.UserID
	case g.ImageEditor != nil:
		return g.ImageEditor.UserID
	}
	return ""
}

// ID returns the id of the wrapped record.
func (g Generation) ID() string {
	switch {
	case g.Novice != nil:
		return g.Novice.ID
	case g.Professional != nil:
		return g.Professional.ID
	case g.ImageEditor != nil:
		return g.ImageEditor.ID
	}
	return ""
}

// LogoDataURI returns the generated image of the wrapped record.
func (g Generation) LogoDataURI() string {
	switch {
	case g.Novice != nil:
		return g.Novice.LogoDataURI
	case g.Professional != nil:
		return g.Professional.LogoDataURI
	case g.ImageEditor != nil:
		return g.ImageEditor.LogoDataURI
	}
	return ""
}

// CreatedAt returns the server-side creation timestamp.
func (g Generation) CreatedAt() time.Time {
	switch {
	case g.Novice != nil:
		return g.Novice.CreatedAt
	case g.Professional != nil:
		return g.Professional.CreatedAt
	case g.ImageEditor != nil:
		return g.ImageEditor.CreatedAt
	}
	return time.Time{}
}

// Record returns the wrapped record for JSON encoding.
func (g Generation) Record() any {
	switch {
	case g.Novice != nil:
		return g.Novice
	case g.Professional != nil:
		return g.Professional
	case g.ImageEditor != nil:
		return g.ImageEditor
	}
	return nil
}
