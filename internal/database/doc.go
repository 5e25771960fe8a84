// Package database manages the PostgreSQL connection pool for wi-api.
//
// It wraps the pgx driver with retry logic on connect, goose-based schema
// migrations, and a health check function for readiness probes. The
// connection string comes from the DATABASE_URL environment variable and is
// required; the service refuses to start without it.
//
// Connection URLs are normalized before parsing so that values copied from
// other runtimes, such as "postgresql+psycopg://", still work.
//
// Migrations are optional. When the configured migrations directory does not
// exist, Migrate returns ErrMigrationsDirNotFound and the caller decides
// whether that is fatal; at startup it is logged and skipped since schema
// ownership may live in a separate deployment step.
package database
