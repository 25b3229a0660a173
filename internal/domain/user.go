package domain

import "time"

// User is the document kept for every identity known to the service. The
// prompt history lives embedded in the user row.
type User struct {
	ID            string
	ExternalID    string
	Email         string
	Name          string
	Picture       string
	PromptHistory []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DisplayName falls back to the email when the identity provider sent no name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
