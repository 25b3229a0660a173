package middleware

import (
	"context"
	"net/http"
	"strings"
)

// SessionHeader carries the client's session id.
const SessionHeader = "X-Session-ID"

const sessionIDKey contextKey = "session_id"

// Session copies the session id header into the request context. Whether the
// id names a live session is decided by the handlers that need it.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sid := strings.TrimSpace(r.Header.Get(SessionHeader)); sid != "" {
			r = r.WithContext(ContextWithSessionID(r.Context(), sid))
		}
		next.ServeHTTP(w, r)
	})
}

func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	if strings.TrimSpace(sessionID) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
