package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload of the service-issued HS256 token. Exp and Iat
// are unix seconds; zero leaves the claim out.
type TokenClaims struct {
	Sub      string
	Email    string
	Exp      int64
	Iat      int64
	Issuer   string
	Audience string
}

type serviceClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type userKey string

const (
	userIDKey userKey = "user_id"
)

var errMissingSubject = errors.New("token has no subject")

func SignJWT(secret string, claims TokenClaims) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	c := serviceClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: claims.Sub,
			Issuer:  claims.Issuer,
		},
	}
	if claims.Audience != "" {
		c.Audience = jwt.ClaimStrings{claims.Audience}
	}
	if claims.Exp != 0 {
		c.ExpiresAt = jwt.NewNumericDate(time.Unix(claims.Exp, 0))
	}
	if claims.Iat != 0 {
		c.IssuedAt = jwt.NewNumericDate(time.Unix(claims.Iat, 0))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// VerifyJWT accepts only HS256 tokens signed with secret that carry a subject
// and, when present, an unexpired exp.
func VerifyJWT(secret, token string) (*TokenClaims, error) {
	var c serviceClaims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if strings.TrimSpace(c.Subject) == "" {
		return nil, errMissingSubject
	}
	out := &TokenClaims{Sub: c.Subject, Email: c.Email, Issuer: c.Issuer}
	if len(c.Audience) > 0 {
		out.Audience = c.Audience[0]
	}
	if c.ExpiresAt != nil {
		out.Exp = c.ExpiresAt.Unix()
	}
	if c.IssuedAt != nil {
		out.Iat = c.IssuedAt.Unix()
	}
	return out, nil
}

// AuthJWT rejects requests without a valid bearer token.
func AuthJWT(secret string) func(http.Handler) http.Handler {
	return authJWT(secret, true)
}

// OptionalAuthJWT attaches the user when a valid bearer token is present and
// lets anonymous requests through. A present but invalid token is rejected.
func OptionalAuthJWT(secret string) func(http.Handler) http.Handler {
	return authJWT(secret, false)
}

func authJWT(secret string, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if required {
					writeError(w, http.StatusUnauthorized, "missing authorization")
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "invalid authorization")
				return
			}
			claims, err := VerifyJWT(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), claims.Sub)))
		})
	}
}

func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	if strings.TrimSpace(userID) == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// writeError emits the same envelope the handlers use.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}
