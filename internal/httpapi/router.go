package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/leodymann/wi-api/internal/probe"
	"github.com/leodymann/wi-api/internal/storage"
)

// healthPaths are polled by orchestrators and excluded from request logs.
var healthPaths = []string{"/health", "/health/ready", "/health/deep"}

// Config controls the HTTP surface.
type Config struct {
	// AllowedOrigins is the CORS allow-list. Responses echo the matching
	// origin and allow credentials, so wildcards are not used here.
	AllowedOrigins []string

	// UploadsDir, when non-empty, mounts a read-only file server for the
	// local storage backend under storage.PublicPrefix. Leave empty when
	// files live in S3 and are served through presigned URLs.
	UploadsDir string
}

type router struct {
	cfg    Config
	log    *slog.Logger
	checks []CheckFunc
	runner *probe.Runner
}

// CheckFunc verifies a single dependency for the readiness endpoint.
type CheckFunc func(ctx context.Context) error

// Option configures the router.
type Option func(*router)

// WithLogger sets the logger used by the middleware chain and handlers.
func WithLogger(log *slog.Logger) Option {
	return func(rt *router) { rt.log = log }
}

// WithReadiness adds dependency checks to GET /health/ready.
// Any failing check makes readiness report 503.
func WithReadiness(checks ...CheckFunc) Option {
	return func(rt *router) { rt.checks = append(rt.checks, checks...) }
}

// WithProbes sets the runner behind GET /health/deep.
func WithProbes(runner *probe.Runner) Option {
	return func(rt *router) { rt.runner = runner }
}

// New builds the HTTP handler: request ID, request logging and panic
// recovery around a CORS-guarded route set. Only the health surface and the
// optional uploads mount are exposed.
func New(cfg Config, opts ...Option) http.Handler {
	rt := &router{cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.runner == nil {
		rt.runner = probe.NewRunner(nil, probe.WithLogger(rt.log))
	}

	r := chi.NewRouter()
	r.Use(RequestID())
	r.Use(RequestLoggerWithConfig(LoggingConfig{
		Logger:    rt.log,
		SkipPaths: healthPaths,
	}))
	r.Use(Recover(rt.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", rt.health)
	r.Get("/health/ready", rt.readiness)
	r.Get("/health/deep", rt.deepHealth)

	if cfg.UploadsDir != "" {
		mountUploads(r, cfg.UploadsDir)
	}

	return r
}

// mountUploads serves stored files from dir under the public uploads prefix.
// Directory listings are disabled.
func mountUploads(r chi.Router, dir string) {
	fs := http.StripPrefix(storage.PublicPrefix, http.FileServer(http.Dir(dir)))
	r.Get(storage.PublicPrefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		fs.ServeHTTP(w, req)
	})
}

// statusResponse is the body shape for health and error responses.
type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
