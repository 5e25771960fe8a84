package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrExpiredToken            = errors.New("token has expired")
	ErrInvalidSignature        = errors.New("invalid token signature")
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
	ErrMissingSigningKey       = errors.New("missing signing key")
	ErrMissingClaims           = errors.New("missing claims")
)

const signingAlgorithm = "HS256"

// StandardClaims holds the RFC 7519 registered claims.
type StandardClaims struct {
	ID        string `json:"jti,omitempty"`
	Subject   string `json:"sub,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Claims is the token payload issued by this service: the registered claims
// plus the application role of the subject.
type Claims struct {
	StandardClaims
	Role string `json:"role,omitempty"`
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Service generates and parses HMAC-SHA256 signed JWTs.
type Service struct {
	signingKey []byte
}

// New creates a Service with the given signing key.
func New(signingKey []byte) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Service{signingKey: signingKey}, nil
}

// NewFromString creates a Service from a string key.
func NewFromString(signingKey string) (*Service, error) {
	return New([]byte(signingKey))
}

// Generate creates a signed token from the given claims.
// Claims can be any JSON-serializable value.
func (s *Service) Generate(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	headerJSON, err := json.Marshal(header{Alg: signingAlgorithm, Typ: "JWT"})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(payloadJSON)
	signature := s.sign(signingInput)

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(signature), nil
}

// Parse validates the token signature and temporal claims, then unmarshals
// the payload into claims. Claims must be a non-nil pointer.
func (s *Service) Parse(token string, claims any) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ErrInvalidToken
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return ErrInvalidToken
	}
	var hdr header
	if err := json.Unmarshal(headerJSON, &hdr); err != nil {
		return ErrInvalidToken
	}
	if hdr.Alg != signingAlgorithm {
		return ErrUnexpectedSigningMethod
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return ErrInvalidToken
	}
	expected := s.sign(parts[0] + "." + parts[1])
	if !hmac.Equal(signature, expected) {
		return ErrInvalidSignature
	}

	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ErrInvalidToken
	}

	// Temporal claims are validated against the raw payload, so custom
	// claim types cannot accidentally opt out of expiry checks.
	var temporal StandardClaims
	if err := json.Unmarshal(payloadJSON, &temporal); err != nil {
		return ErrInvalidToken
	}
	now := time.Now().Unix()
	if temporal.ExpiresAt != 0 && now >= temporal.ExpiresAt {
		return ErrExpiredToken
	}
	if temporal.NotBefore != 0 && now < temporal.NotBefore {
		return ErrInvalidToken
	}

	if claims == nil {
		return nil
	}
	if err := json.Unmarshal(payloadJSON, claims); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}

func (s *Service) sign(input string) []byte {
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(input))
	return mac.Sum(nil)
}
