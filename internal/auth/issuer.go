package auth

import (
	"context"
	"fmt"
	"time"
)

// TokenIssuer binds a signing service to the configured token lifetime.
type TokenIssuer struct {
	service *Service
	ttl     time.Duration
}

// NewTokenIssuer creates a TokenIssuer from configuration.
// A non-positive lifetime falls back to one hour.
func NewTokenIssuer(cfg Config) (*TokenIssuer, error) {
	service, err := NewFromString(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	ttl := cfg.TokenTTL()
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &TokenIssuer{service: service, ttl: ttl}, nil
}

// TTL returns the lifetime applied to issued tokens.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue creates a signed token for the subject with the given role.
func (i *TokenIssuer) Issue(subject, role string) (string, error) {
	now := time.Now()
	return i.service.Generate(Claims{
		StandardClaims: StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(i.ttl).Unix(),
		},
		Role: role,
	})
}

// Verify parses and validates a token issued by Issue.
func (i *TokenIssuer) Verify(token string) (*Claims, error) {
	var claims Claims
	if err := i.service.Parse(token, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// Healthcheck exercises a full sign and verify round trip, proving the
// signing key is usable. Context is accepted for probe compatibility.
func (i *TokenIssuer) Healthcheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	token, err := i.Issue("healthcheck", "system")
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	claims, err := i.Verify(token)
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	if claims.Subject != "healthcheck" {
		return fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}
	return nil
}
