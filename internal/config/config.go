package config

import (
	"errors"
	"slices"
	"strings"

	"github.com/leodymann/wi-api/internal/auth"
	"github.com/leodymann/wi-api/internal/blibsend"
	"github.com/leodymann/wi-api/internal/database"
	"github.com/leodymann/wi-api/internal/server"
	"github.com/leodymann/wi-api/internal/storage"
)

// Environment values recognized in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// DefaultDevOrigins is the CORS allow-list used outside production when
// neither FRONTEND_URLS nor ALLOWED_ORIGINS is set. It covers the Vite and
// CRA dev servers on both localhost spellings.
var DefaultDevOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// ErrMissingOrigins is returned by Validate when production runs without an
// explicit CORS allow-list.
var ErrMissingOrigins = errors.New("cors allow-list is empty, set FRONTEND_URLS or ALLOWED_ORIGINS")

// Config is the full environment contract of the service. Every value is
// read once at startup and stays fixed for the process lifetime.
type Config struct {
	AppName     string `env:"APP_NAME" envDefault:"wi-api"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// FrontendURLs wins over LegacyOrigins when both are set. ALLOWED_ORIGINS
	// is kept as an alias because older deployments still define it.
	FrontendURLs  []string `env:"FRONTEND_URLS" envSeparator:","`
	LegacyOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	Server   server.Config
	Database database.Config
	Auth     auth.Config
	Storage  storage.Config
	Blibsend blibsend.Config
}

// IsProduction reports whether the service runs with the production profile.
func (c Config) IsProduction() bool { return c.Environment == EnvProduction }

// IsDevelopment reports whether the service runs with the development profile.
func (c Config) IsDevelopment() bool { return c.Environment == EnvDevelopment }

// Addr returns the listen address derived from PORT.
func (c Config) Addr() string { return c.Server.Addr() }

// AllowedOrigins resolves the CORS allow-list: FRONTEND_URLS first, then
// ALLOWED_ORIGINS, then the development defaults. Production gets no
// implicit fallback.
func (c Config) AllowedOrigins() []string {
	if origins := cleanOrigins(c.FrontendURLs); len(origins) > 0 {
		return origins
	}
	if origins := cleanOrigins(c.LegacyOrigins); len(origins) > 0 {
		return origins
	}
	if c.IsProduction() {
		return nil
	}
	return slices.Clone(DefaultDevOrigins)
}

// Validate applies cross-field rules that individual env tags cannot express.
func (c Config) Validate() error {
	if c.IsProduction() && len(c.AllowedOrigins()) == 0 {
		return ErrMissingOrigins
	}
	return nil
}

func cleanOrigins(origins []string) []string {
	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = strings.TrimSpace(origin); origin != "" {
			cleaned = append(cleaned, origin)
		}
	}
	return cleaned
}
