package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// claimsContextKey is used as a key for storing parsed claims in request context.
type claimsContextKey struct{}

// MiddlewareConfig configures the bearer token middleware.
type MiddlewareConfig struct {
	// Issuer verifies incoming tokens.
	Issuer *TokenIssuer
	// Extractor pulls the raw token from the request.
	// Defaults to the Authorization header with Bearer scheme.
	Extractor func(r *http.Request) string
	// ErrorHandler writes the response for failed authentication.
	// Defaults to a JSON 401.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware authenticates requests with a bearer token and stores the
// parsed claims in the request context.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{Issuer: issuer})
}

// MiddlewareWithConfig is Middleware with custom extraction or error handling.
// Panics without an issuer since that is a programming error, not a runtime one.
func MiddlewareWithConfig(cfg MiddlewareConfig) func(http.Handler) http.Handler {
	if cfg.Issuer == nil {
		panic("auth middleware: issuer is required")
	}
	if cfg.Extractor == nil {
		cfg.Extractor = TokenFromAuthHeader
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cfg.Extractor(r)
			if token == "" {
				cfg.ErrorHandler(w, r, ErrInvalidToken)
				return
			}

			claims, err := cfg.Issuer.Verify(token)
			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a context carrying the parsed claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	if claims == nil {
		return ctx
	}
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext retrieves claims stored by the middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	return claims, ok
}

// TokenFromAuthHeader extracts a token from the Authorization header.
// Tokens without the Bearer prefix are accepted as-is.
func TokenFromAuthHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const bearerPrefix = "Bearer "
	if strings.HasPrefix(header, bearerPrefix) {
		return header[len(bearerPrefix):]
	}
	return header
}

// TokenFromQuery returns an extractor reading the token from a query parameter.
func TokenFromQuery(param string) func(r *http.Request) string {
	return func(r *http.Request) string {
		return r.URL.Query().Get(param)
	}
}

// TokenFromCookie returns an extractor reading the token from a cookie.
func TokenFromCookie(name string) func(r *http.Request) string {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}
