package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"flatify/internal/domain"
	"flatify/internal/middleware"
)

type roleRequest struct {
	Role string `json:"role"`
}

// CreateSession starts a visitor session. The id is returned in the body and
// in the session header for the client to echo back.
func (a *App) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := a.Sessions.Create(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if uid := a.currentUserID(r); uid != "" {
		sess.UserID = uid
		if err := a.Sessions.Save(r.Context(), sess); err != nil {
			a.fail(w, r, err)
			return
		}
	}
	w.Header().Set(middleware.SessionHeader, sess.ID)
	a.ok(w, http.StatusCreated, sess, "")
}

func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := a.loadSession(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, sess, "")
}

// SetRole stores the generation flow the visitor picked.
func (a *App) SetRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok || role == domain.RoleNone {
		a.error(w, http.StatusBadRequest, fmt.Sprintf("unknown role %q", req.Role))
		return
	}
	a.saveRole(w, r, role)
}

func (a *App) ClearRole(w http.ResponseWriter, r *http.Request) {
	a.saveRole(w, r, domain.RoleNone)
}

func (a *App) saveRole(w http.ResponseWriter, r *http.Request, role domain.Role) {
	sess, err := a.loadSession(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	sess.Role = role
	if uid := a.currentUserID(r); uid != "" {
		sess.UserID = uid
	}
	if err := a.Sessions.Save(r.Context(), sess); err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, sess, "")
}

func (a *App) loadSession(r *http.Request) (*domain.Session, error) {
	sid := a.sessionID(r)
	if sid == "" {
		return nil, fmt.Errorf("%w: %s header is required", domain.ErrValidation, middleware.SessionHeader)
	}
	sess, err := a.Sessions.Get(r.Context(), sid)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("session %w", domain.ErrNotFound)
	}
	return sess, err
}
