package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"flatify/internal/domain"
	"flatify/internal/middleware"
)

type googleVerifyRequest struct {
	IDToken string `json:"id_token"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  userProfileDTO `json:"user"`
}

type userProfileDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func profileFromUser(u *domain.User) userProfileDTO {
	return userProfileDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.DisplayName(),
		Picture:   u.Picture,
		CreatedAt: u.CreatedAt,
	}
}

// AuthGoogle exchanges a Google ID token for a service token, creating the
// user on first sign-in.
func (a *App) AuthGoogle(w http.ResponseWriter, r *http.Request) {
	var req googleVerifyRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.IDToken) == "" {
		a.error(w, http.StatusBadRequest, "id_token required")
		return
	}
	if a.GoogleVerifier == nil {
		a.error(w, http.StatusServiceUnavailable, "google sign-in is not configured")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	id, err := a.GoogleVerifier.Verify(ctx, req.IDToken)
	if err != nil {
		a.log(r).Warn().Err(err).Msg("google verify failed")
		a.error(w, http.StatusUnauthorized, "invalid google token")
		return
	}
	user, err := a.Users.UpsertByExternalID(r.Context(), &domain.User{
		ExternalID: id.Subject,
		Email:      id.Email,
		Name:       id.Name,
		Picture:    id.Picture,
	})
	if err != nil {
		a.fail(w, r, fmt.Errorf("upsert user: %w", err))
		return
	}
	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      user.ID,
		Email:    user.Email,
		Iat:      a.now().Unix(),
		Exp:      a.now().Add(a.tokenTTL()).Unix(),
		Issuer:   "flatify",
		Audience: "flatify-clients",
	})
	if err != nil {
		a.fail(w, r, fmt.Errorf("sign jwt: %w", err))
		return
	}
	if sid := a.sessionID(r); sid != "" {
		a.bindSession(r, sid, user.ID)
	}
	a.ok(w, http.StatusOK, authResponse{Token: token, User: profileFromUser(user)}, "")
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "missing user context")
		return
	}
	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, profileFromUser(user), "")
}

// bindSession records the signed-in user on the visitor's session. Failures
// only cost the binding, so they are logged.
func (a *App) bindSession(r *http.Request, sessionID, userID string) {
	if a.Sessions == nil {
		return
	}
	sess, err := a.Sessions.Get(r.Context(), sessionID)
	if err != nil {
		a.log(r).Debug().Err(err).Str("session_id", sessionID).Msg("session not bound")
		return
	}
	sess.UserID = userID
	if err := a.Sessions.Save(r.Context(), sess); err != nil {
		a.log(r).Warn().Err(err).Str("session_id", sessionID).Msg("bind session failed")
	}
}
