// Package auth provides the token-signing and password-hashing primitives
// of wi-api.
//
// Tokens are RFC 7519 JWTs signed with HMAC-SHA256. The signing service is
// constructed at startup from JWT_SECRET and JWT_EXPIRES_MINUTES so that a
// missing or broken secret fails the boot instead of the first login.
// Signature verification uses constant-time comparison.
//
// Issued tokens carry the standard sub, iat and exp claims plus an
// application role claim:
//
//	issuer, err := auth.NewTokenIssuer(cfg)
//	token, err := issuer.Issue("user-id", "admin")
//
//	claims, err := issuer.Verify(token)
//	// claims.Subject == "user-id", claims.Role == "admin"
//
// Passwords are hashed with bcrypt, which limits input to 72 bytes; longer
// passwords are rejected explicitly rather than silently truncated.
package auth
