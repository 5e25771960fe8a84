package server

import (
	"errors"
	"net"
	"strconv"
	"time"
)

// ErrInvalidPort is returned when the configured port is outside the valid range.
var ErrInvalidPort = errors.New("server port must be between 1 and 65535, check the PORT env var")

// Config holds the HTTP listener configuration.
//
// The deployment platform assigns the public port through PORT and routes
// external traffic to it; TLS is terminated before requests reach the
// process, so the server always speaks plain HTTP.
type Config struct {
	// Host is the bind address. Empty means all interfaces so the container
	// is reachable from outside its network namespace.
	Host string `env:"HTTP_HOST" envDefault:""`

	// Port is the listening port, injected by the platform.
	Port int `env:"PORT" envDefault:"8000"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Port:            8000,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// NewFromConfig creates a Server from configuration.
// Additional options can override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, ErrInvalidPort
	}

	configOpts := make([]Option, 0, len(opts)+4)
	if cfg.ReadTimeout > 0 {
		configOpts = append(configOpts, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.WriteTimeout > 0 {
		configOpts = append(configOpts, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		configOpts = append(configOpts, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		configOpts = append(configOpts, WithShutdownTimeout(cfg.ShutdownTimeout))
	}

	// User-provided options win over config values.
	configOpts = append(configOpts, opts...)

	return New(cfg.Addr(), configOpts...), nil
}
