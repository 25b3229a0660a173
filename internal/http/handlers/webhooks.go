package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	svix "github.com/svix/svix-webhooks/go"

	"flatify/internal/domain"
)

type userCreatedEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// UserCreatedWebhook creates the user document for an identity-provider
// "user.created" event. Other event types are acknowledged and ignored.
func (a *App) UserCreatedWebhook(w http.ResponseWriter, r *http.Request) {
	if a.WebhookSecret == "" {
		a.error(w, http.StatusServiceUnavailable, "webhook secret is not configured")
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	wh, err := svix.NewWebhook(a.WebhookSecret)
	if err != nil {
		a.log(r).Error().Err(err).Msg("webhook secret is malformed")
		a.error(w, http.StatusServiceUnavailable, "webhook secret is not configured")
		return
	}
	// Verify checks the svix-id/svix-timestamp/svix-signature headers,
	// including the timestamp tolerance.
	if err := wh.Verify(body, r.Header); err != nil {
		a.log(r).Warn().Err(err).Msg("webhook verification failed")
		a.error(w, http.StatusBadRequest, "invalid webhook signature")
		return
	}
	var evt userCreatedEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if evt.Type != "user.created" {
		a.ok(w, http.StatusOK, nil, "event ignored")
		return
	}
	var email string
	if len(evt.Data.EmailAddresses) > 0 {
		email = evt.Data.EmailAddresses[0].EmailAddress
	}
	user, err := a.Users.UpsertByExternalID(r.Context(), &domain.User{
		ExternalID: evt.Data.ID,
		Email:      email,
		Name:       strings.TrimSpace(evt.Data.FirstName + " " + evt.Data.LastName),
		Picture:    evt.Data.ImageURL,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.log(r).Info().Str("user_id", user.ID).Msg("user created from webhook")
	a.ok(w, http.StatusOK, profileFromUser(user), "")
}
