package handlers

import (
	"fmt"
	"net/http"

	"flatify/internal/domain"
)

type suggestionRequest struct {
	BusinessName string `json:"businessName"`
	Type         string `json:"type"`
}

type imageSuggestionRequest struct {
	SourceImageURI string `json:"sourceImageUri"`
	Type           string `json:"type"`
}

func (a *App) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	kind, ok := domain.ParseSuggestionType(req.Type)
	if !ok || kind.FromImage() {
		a.fail(w, r, fmt.Errorf("%w: %q", domain.ErrInvalidSuggestionType, req.Type))
		return
	}
	s, err := a.Suggestions.Suggest(r.Context(), req.BusinessName, kind)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, s, "")
}

// SuggestFromImage answers a name or description question about an image.
func (a *App) SuggestFromImage(w http.ResponseWriter, r *http.Request) {
	var req imageSuggestionRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	kind, ok := domain.ParseImageSuggestionType(req.Type)
	if !ok {
		a.fail(w, r, fmt.Errorf("%w: %q", domain.ErrInvalidSuggestionType, req.Type))
		return
	}
	if req.SourceImageURI == "" {
		a.error(w, http.StatusBadRequest, "sourceImageUri is required")
		return
	}
	s, err := a.Suggestions.SuggestFromImage(r.Context(), req.SourceImageURI, kind)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, s, "")
}
