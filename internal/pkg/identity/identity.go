// Package identity verifies ID tokens issued by the external identity
// provider (Firebase Authentication) before the API trusts an email.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/config"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrMissingToken     = errors.New("identity token is required")
	ErrInvalidToken     = errors.New("identity token is invalid")
	ErrEmailNotVerified = errors.New("identity provider has not verified this email")
)

// Identity is what a verified ID token proves about its bearer.
type Identity struct {
	Subject string
	Email   string
}

type Verifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

// TokenVerifier checks signature, issuer, audience and expiry of RS256 ID
// tokens against a JWK set.
type TokenVerifier struct {
	keys     jwk.Set
	issuer   string
	audience string
}

func NewTokenVerifier(keys jwk.Set, issuer, audience string) *TokenVerifier {
	return &TokenVerifier{keys: keys, issuer: issuer, audience: audience}
}

// NewFirebaseVerifier fetches the provider's signing keys from cfg.JWKSURL
// and keeps them refreshed until ctx is done.
func NewFirebaseVerifier(ctx context.Context, cfg config.IdentityConfig) (*TokenVerifier, error) {
	keyCache := jwk.NewCache(ctx)
	if err := keyCache.Register(cfg.JWKSURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, fmt.Errorf("register identity keys: %w", err)
	}

	refreshCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := keyCache.Refresh(refreshCtx, cfg.JWKSURL); err != nil {
		slog.Warn("unable to fetch identity provider keys, will retry on first use", "url", cfg.JWKSURL, "error", err)
	}

	return NewTokenVerifier(jwk.NewCachedSet(keyCache, cfg.JWKSURL), cfg.Issuer, cfg.ProjectID), nil
}

func (v *TokenVerifier) Verify(_ context.Context, idToken string) (Identity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return Identity{}, ErrMissingToken
	}

	token, err := jwt.Parse([]byte(idToken),
		jwt.WithKeySet(v.keys),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithAcceptableSkew(30*time.Second),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if token.Subject() == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	email, _ := claimString(token, "email")
	if email == "" {
		return Identity{}, fmt.Errorf("%w: missing email", ErrInvalidToken)
	}
	if verified, _ := claimBool(token, "email_verified"); !verified {
		return Identity{}, ErrEmailNotVerified
	}

	return Identity{Subject: token.Subject(), Email: email}, nil
}

func claimString(token jwt.Token, name string) (string, bool) {
	raw, ok := token.Get(name)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

func claimBool(token jwt.Token, name string) (bool, bool) {
	raw, ok := token.Get(name)
	if !ok {
		return false, false
	}
	b, ok := raw.(bool)
	return b, ok
}
