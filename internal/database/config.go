package database

import (
	"strings"
	"time"
)

// Config holds database connection configuration.
// Pool defaults are sized for a typical single-service deployment.
type Config struct {
	URL string `env:"DATABASE_URL,required,notEmpty"`

	MaxOpenConns      int32         `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s"`

	MigrationsPath  string `env:"DB_MIGRATIONS_PATH" envDefault:"migrations"`
	MigrationsTable string `env:"DB_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}

// normalizeURL strips driver suffixes from connection URL schemes, e.g.
// "postgresql+psycopg://..." becomes "postgresql://...". Platforms and ORM
// configs hand out such URLs and pgx does not understand them.
func normalizeURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	if base, _, found := strings.Cut(scheme, "+"); found {
		scheme = base
	}
	return scheme + "://" + rest
}
