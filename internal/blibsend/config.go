package blibsend

import "time"

// Config holds Blibsend API configuration. Credentials are optional so the
// application can start without the integration; Enabled reports whether
// enough is set to construct a client.
type Config struct {
	BaseURL      string `env:"BLIBSEND_BASE_URL"`
	SessionToken string `env:"BLIBSEND_SESSION_TOKEN"`
	ClientID     string `env:"BLIBSEND_CLIENT_ID"`
	ClientSecret string `env:"BLIBSEND_CLIENT_SECRET"`

	// DefaultTo receives direct messages when the caller does not name a
	// recipient. GroupTo plays the same role for group sends.
	DefaultTo string `env:"BLIBSEND_DEFAULT_TO"`
	GroupTo   string `env:"BLIBSEND_GROUP_TO"`

	// FileTimeout is higher than SendTimeout because group file payloads
	// carry base64-encoded content.
	SendTimeout time.Duration `env:"BLIBSEND_SEND_TIMEOUT" envDefault:"25s"`
	FileTimeout time.Duration `env:"BLIBSEND_FILE_TIMEOUT" envDefault:"60s"`
}

// Enabled reports whether the integration is configured.
func (c Config) Enabled() bool {
	return c.BaseURL != "" && c.ClientID != "" && c.ClientSecret != ""
}
