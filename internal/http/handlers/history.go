package handlers

import (
	"errors"
	"net/http"
	"strings"

	"flatify/internal/domain"
)

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type historyResponse struct {
	PromptHistory []string `json:"promptHistory"`
}

// historyBackend resolves the history store for the caller. Anonymous callers
// need a live session.
func (a *App) historyBackend(r *http.Request) (domain.HistoryBackend, string, error) {
	if a.History == nil {
		return nil, "", errors.New("prompt history is not configured")
	}
	userID := a.currentUserID(r)
	sessionID := a.sessionID(r)
	if userID == "" && sessionID != "" && a.Sessions != nil {
		if _, err := a.Sessions.Get(r.Context(), sessionID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				sessionID = ""
			} else {
				return nil, "", err
			}
		}
	}
	return a.History.For(userID, sessionID)
}

func (a *App) GetPromptHistory(w http.ResponseWriter, r *http.Request) {
	backend, owner, err := a.historyBackend(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	list, err := backend.Get(r.Context(), owner)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, historyResponse{PromptHistory: list}, "")
}

func (a *App) AppendPromptHistory(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "prompt is required")
		return
	}
	backend, owner, err := a.historyBackend(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	list, err := backend.Append(r.Context(), owner, req.Prompt)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, historyResponse{PromptHistory: list}, "prompt history updated")
}

func (a *App) ClearPromptHistory(w http.ResponseWriter, r *http.Request) {
	backend, owner, err := a.historyBackend(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := backend.Clear(r.Context(), owner); err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, historyResponse{PromptHistory: []string{}}, "prompt history cleared")
}

// recordPrompt appends to the caller's history after a model call. It never
// fails the surrounding request.
func (a *App) recordPrompt(r *http.Request, prompt string) {
	backend, owner, err := a.historyBackend(r)
	if err != nil {
		a.log(r).Debug().Err(err).Msg("prompt history skipped")
		return
	}
	if _, err := backend.Append(r.Context(), owner, prompt); err != nil {
		a.log(r).Warn().Err(err).Msg("append prompt history failed")
	}
}
