package history

import (
	"fmt"

	"flatify/internal/domain"
)

// Resolver picks the history backend for a request: the server backend for a
// signed-in user, otherwise the local backend for the visitor's session.
type Resolver struct {
	Server domain.HistoryBackend
	Local  domain.HistoryBackend
}

// For returns the backend and the owner key to pass to it.
func (r *Resolver) For(userID, sessionID string) (domain.HistoryBackend, string, error) {
	if userID != "" && r.Server != nil {
		return r.Server, userID, nil
	}
	if sessionID != "" && r.Local != nil {
		return r.Local, sessionID, nil
	}
	return nil, "", fmt.Errorf("%w: sign in or start a session to keep prompt history", domain.ErrUnauthorized)
}
