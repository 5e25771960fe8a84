package auth

import "time"

// Config holds token signing configuration.
type Config struct {
	// JWTSecret signs and verifies every issued token. There is no usable
	// default; deployments must provide their own secret.
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// ExpiresMinutes is the access token lifetime in whole minutes.
	ExpiresMinutes int `env:"JWT_EXPIRES_MINUTES" envDefault:"60"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.ExpiresMinutes) * time.Minute
}
