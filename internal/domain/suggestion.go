package domain

import "strings"

// SuggestionType enumerates the suggestion categories.
type SuggestionType string

const (
	SuggestionDescription          SuggestionType = "description"
	SuggestionSlogan               SuggestionType = "slogan"
	SuggestionColor                SuggestionType = "color"
	SuggestionIcon                 SuggestionType = "icon"
	SuggestionNameFromImage        SuggestionType = "business-name-from-image"
	SuggestionDescriptionFromImage SuggestionType = "description-from-image"
)

// ParseSuggestionType accepts the wire values; "name" is kept as an alias of
// the image name category.
func ParseSuggestionType(v string) (SuggestionType, bool) {
	switch SuggestionType(strings.ToLower(strings.TrimSpace(v))) {
	case SuggestionDescription:
		return SuggestionDescription, true
	case SuggestionSlogan:
		return SuggestionSlogan, true
	case SuggestionColor:
		return SuggestionColor, true
	case SuggestionIcon:
		return SuggestionIcon, true
	case SuggestionNameFromImage, "name":
		return SuggestionNameFromImage, true
	case SuggestionDescriptionFromImage:
		return SuggestionDescriptionFromImage, true
	default:
		return "", false
	}
}

// FromImage reports whether the category is derived from an uploaded image.
func (t SuggestionType) FromImage() bool {
	return t == SuggestionNameFromImage || t == SuggestionDescriptionFromImage
}

// SuggestionShape tags the Suggestion variant.
type SuggestionShape string

const (
	ShapeList   SuggestionShape = "list"
	ShapeSingle SuggestionShape = "single"
)

// Suggestion is either a list of items or a single value; callers switch on
// Shape instead of guessing.
type Suggestion struct {
	Type  SuggestionType  `json:"type"`
	Shape SuggestionShape `json:"shape"`
	Items []string        `json:"items,omitempty"`
	Value string          `json:"value,omitempty"`
}

// ListSuggestion builds the list variant.
func ListSuggestion(t SuggestionType, items []string) Suggestion {
	if items == nil {
		items = []string{}
	}
	return Suggestion{Type: t, Shape: ShapeList, Items: items}
}

// SingleSuggestion builds the single-value variant.
func SingleSuggestion(t SuggestionType, value string) Suggestion {
	return Suggestion{Type: t, Shape: ShapeSingle, Value: value}
}

// ParseImageSuggestionType maps the short image categories ("name",
// "description") as well as the full wire values onto the image types.
func ParseImageSuggestionType(v string) (SuggestionType, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "name", string(SuggestionNameFromImage):
		return SuggestionNameFromImage, true
	case "description", string(SuggestionDescriptionFromImage):
		return SuggestionDescriptionFromImage, true
	default:
		return "", false
	}
}
