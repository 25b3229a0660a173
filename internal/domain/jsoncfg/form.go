package jsoncfg

import (
	"fmt"
	"regexp"
	"strings"

	"flatify/internal/domain"
)

// NoviceForm is the guided form: name, description and optional style hints.
type NoviceForm struct {
	BusinessName        string `json:"businessName"`
	BusinessDescription string `json:"businessDescription"`
	PrimaryColor        string `json:"primaryColor"`
	SecondaryColor      string `json:"secondaryColor"`
	FontStyle           string `json:"fontStyle"`
	Layout              string `json:"layout"`
}

// ProfessionalForm carries a raw prompt, optionally already refined.
type ProfessionalForm struct {
	Prompt        string `json:"prompt"`
	RefinedPrompt string `json:"refinedPrompt"`
	UseRefined    bool   `json:"useRefined"`
}

// SimilarForm drives generation from an uploaded source image.
type SimilarForm struct {
	SourceImageURI          string `json:"sourceImageUri"`
	SourceImageOriginalName string `json:"sourceImageOriginalName"`
	BusinessName            string `json:"businessName"`
	BusinessDescription     string `json:"businessDescription"`
	ColorPalette            string `json:"colorPalette"`
	FontStyle               string `json:"fontStyle"`
	LogoShape               string `json:"logoShape"`
}

// RefineLogoForm asks the model to change an existing logo.
type RefineLogoForm struct {
	LogoDataURI      string `json:"logoDataUri"`
	RefinementPrompt string `json:"refinementPrompt"`
}

var hexColorRe = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NormalizeHexColor trims the value and adds a missing leading '#'. Values
// that are not hex colours are returned trimmed but otherwise untouched.
func NormalizeHexColor(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if hexColorRe.MatchString(v) {
		return "#" + strings.ToUpper(strings.TrimPrefix(v, "#"))
	}
	return v
}

// Normalize trims every field and canonicalises the colours.
func (f *NoviceForm) Normalize() {
	if f == nil {
		return
	}
	f.BusinessName = strings.TrimSpace(f.BusinessName)
	f.BusinessDescription = strings.TrimSpace(f.BusinessDescription)
	f.PrimaryColor = NormalizeHexColor(f.PrimaryColor)
	f.SecondaryColor = NormalizeHexColor(f.SecondaryColor)
	f.FontStyle = strings.TrimSpace(f.FontStyle)
	f.Layout = strings.TrimSpace(f.Layout)
}

// Validate requires the business name and description.
func (f NoviceForm) Validate() error {
	if f.BusinessName == "" {
		return fmt.Errorf("%w: businessName is required", domain.ErrValidation)
	}
	if f.BusinessDescription == "" {
		return fmt.Errorf("%w: businessDescription is required", domain.ErrValidation)
	}
	return nil
}

func (f *ProfessionalForm) Normalize() {
	if f == nil {
		return
	}
	f.Prompt = strings.TrimSpace(f.Prompt)
	f.RefinedPrompt = strings.TrimSpace(f.RefinedPrompt)
}

// UsedPrompt is the prompt actually sent to the model.
func (f ProfessionalForm) UsedPrompt() string {
	if f.UseRefined && f.RefinedPrompt != "" {
		return f.RefinedPrompt
	}
	return f.Prompt
}

func (f ProfessionalForm) Validate() error {
	if f.UsedPrompt() == "" {
		return fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}
	return nil
}

func (f *SimilarForm) Normalize() {
	if f == nil {
		return
	}
	f.SourceImageURI = strings.TrimSpace(f.SourceImageURI)
	f.SourceImageOriginalName = strings.TrimSpace(f.SourceImageOriginalName)
	f.BusinessName = strings.TrimSpace(f.BusinessName)
	f.BusinessDescription = strings.TrimSpace(f.BusinessDescription)
	f.ColorPalette = strings.TrimSpace(f.ColorPalette)
	f.FontStyle = strings.TrimSpace(f.FontStyle)
	f.LogoShape = strings.TrimSpace(f.LogoShape)
}

func (f SimilarForm) Validate() error {
	switch {
	case f.SourceImageURI == "":
		return fmt.Errorf("%w: sourceImageUri is required", domain.ErrValidation)
	case f.BusinessName == "":
		return fmt.Errorf("%w: businessName is required", domain.ErrValidation)
	case f.BusinessDescription == "":
		return fmt.Errorf("%w: businessDescription is required", domain.ErrValidation)
	}
	return nil
}

func (f *RefineLogoForm) Normalize() {
	if f == nil {
		return
	}
	f.LogoDataURI = strings.TrimSpace(f.LogoDataURI)
	f.RefinementPrompt = strings.TrimSpace(f.RefinementPrompt)
}

func (f RefineLogoForm) Validate() error {
	if f.LogoDataURI == "" || f.RefinementPrompt == "" {
		return fmt.Errorf("%w: logoDataUri and refinementPrompt are required", domain.ErrValidation)
	}
	return nil
}
