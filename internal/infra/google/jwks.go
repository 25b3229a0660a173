package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Verifier validates Google ID tokens against the issuer's discovery document
// and published keys. Discovery runs once, on first use; the key set is
// refreshed by the oidc package when it meets an unknown key id.
type Verifier struct {
	issuer     string
	clientID   string
	httpClient *http.Client
	now        func() time.Time

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

func NewVerifier(issuer, clientID string) *Verifier {
	return &Verifier{
		issuer:     issuer,
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// IDToken holds the claims the service reads from a verified Google ID token.
type IDToken struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type idClaims struct {
	Email         string `json:"email"`
	EmailVerified any    `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Verify checks the token signature, issuer, audience and expiry and returns
// its identity claims.
func (v *Verifier) Verify(ctx context.Context, token string) (*IDToken, error) {
	idv, err := v.tokenVerifier(ctx)
	if err != nil {
		return nil, err
	}
	tok, err := idv.Verify(oidc.ClientContext(ctx, v.httpClient), token)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	if tok.Subject == "" {
		return nil, errors.New("missing subject")
	}
	var c idClaims
	if err := tok.Claims(&c); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}
	out := &IDToken{Subject: tok.Subject, Email: c.Email, Name: c.Name, Picture: c.Picture}
	// Google sends email_verified as a bool, some proxies as a string.
	switch ev := c.EmailVerified.(type) {
	case bool:
		out.EmailVerified = ev
	case string:
		out.EmailVerified = ev == "true"
	}
	return out, nil
}

func (v *Verifier) tokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.verifier != nil {
		return v.verifier, nil
	}
	// The provider reuses this context for key refreshes after the request ends.
	providerCtx := oidc.ClientContext(context.WithoutCancel(ctx), v.httpClient)
	provider, err := oidc.NewProvider(providerCtx, v.issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery for %s: %w", v.issuer, err)
	}
	v.verifier = provider.Verifier(&oidc.Config{ClientID: v.clientID, Now: v.now})
	return v.verifier, nil
}
