package auth_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leodymann/wi-api/internal/auth"
)

func TestNewService(t *testing.T) {
	t.Run("rejects empty key", func(t *testing.T) {
		svc, err := auth.New(nil)
		assert.ErrorIs(t, err, auth.ErrMissingSigningKey)
		assert.Nil(t, svc)

		svc, err = auth.NewFromString("")
		assert.ErrorIs(t, err, auth.ErrMissingSigningKey)
		assert.Nil(t, svc)
	})
}

func TestGenerateAndParse(t *testing.T) {
	svc, err := auth.NewFromString("test-secret-key-for-signing-tokens")
	require.NoError(t, err)

	t.Run("round-trips claims", func(t *testing.T) {
		now := time.Now()
		token, err := svc.Generate(auth.Claims{
			StandardClaims: auth.StandardClaims{
				Subject:   "user-42",
				IssuedAt:  now.Unix(),
				ExpiresAt: now.Add(time.Hour).Unix(),
			},
			Role: "admin",
		})
		require.NoError(t, err)
		require.NotEmpty(t, token)

		var claims auth.Claims
		require.NoError(t, svc.Parse(token, &claims))
		assert.Equal(t, "user-42", claims.Subject)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, now.Unix(), claims.IssuedAt)
	})

	t.Run("rejects nil claims on generate", func(t *testing.T) {
		_, err := svc.Generate(nil)
		assert.ErrorIs(t, err, auth.ErrMissingClaims)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		token, err := svc.Generate(auth.Claims{
			StandardClaims: auth.StandardClaims{
				Subject:   "user-42",
				IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
				ExpiresAt: time.Now().Add(-time.Hour).Unix(),
			},
		})
		require.NoError(t, err)

		var claims auth.Claims
		assert.ErrorIs(t, svc.Parse(token, &claims), auth.ErrExpiredToken)
	})

	t.Run("rejects tokens used before nbf", func(t *testing.T) {
		token, err := svc.Generate(auth.StandardClaims{
			Subject:   "user-42",
			NotBefore: time.Now().Add(time.Hour).Unix(),
			ExpiresAt: time.Now().Add(2 * time.Hour).Unix(),
		})
		require.NoError(t, err)

		var claims auth.StandardClaims
		assert.ErrorIs(t, svc.Parse(token, &claims), auth.ErrInvalidToken)
	})

	t.Run("rejects tampered signatures", func(t *testing.T) {
		token, err := svc.Generate(auth.StandardClaims{Subject: "user-42"})
		require.NoError(t, err)

		// Flip one character inside the signature segment.
		i := len(token) - 8
		flipped := byte('A')
		if token[i] == 'A' {
			flipped = 'B'
		}
		tampered := token[:i] + string(flipped) + token[i+1:]

		var claims auth.StandardClaims
		assert.ErrorIs(t, svc.Parse(tampered, &claims), auth.ErrInvalidSignature)
	})

	t.Run("rejects tokens signed with a different key", func(t *testing.T) {
		other, err := auth.NewFromString("a-completely-different-secret")
		require.NoError(t, err)

		token, err := other.Generate(auth.StandardClaims{Subject: "user-42"})
		require.NoError(t, err)

		var claims auth.StandardClaims
		assert.ErrorIs(t, svc.Parse(token, &claims), auth.ErrInvalidSignature)
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		var claims auth.StandardClaims
		assert.ErrorIs(t, svc.Parse("not-a-token", &claims), auth.ErrInvalidToken)
		assert.ErrorIs(t, svc.Parse("a.b", &claims), auth.ErrInvalidToken)
		assert.ErrorIs(t, svc.Parse("", &claims), auth.ErrInvalidToken)
	})

	t.Run("rejects unexpected signing algorithms", func(t *testing.T) {
		enc := base64.RawURLEncoding
		forged := enc.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`)) +
			"." + enc.EncodeToString([]byte(`{"sub":"user-42"}`)) +
			"." + enc.EncodeToString([]byte("signature"))

		var claims auth.StandardClaims
		assert.ErrorIs(t, svc.Parse(forged, &claims), auth.ErrUnexpectedSigningMethod)
	})
}
