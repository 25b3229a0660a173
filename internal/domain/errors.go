package domain

import "errors"

var (
	ErrValidation            = errors.New("validation error")
	ErrGenerationFailed      = errors.New("generation failed")
	ErrRefinementFailed      = errors.New("refinement failed")
	ErrInvalidSuggestionType = errors.New("invalid suggestion type")
	ErrNotFoundOrForbidden   = errors.New("not found or not owned by user")
	ErrNotFound              = errors.New("not found")
	ErrInvalidOwnerID        = errors.New("invalid owner id")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrServiceUnavailable    = errors.New("service unavailable")
)
