package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/leodymann/wi-api/internal/clientip"
	"github.com/leodymann/wi-api/internal/logger"
)

// requestIDContextKey is used as a key for storing the request ID in request context.
type requestIDContextKey struct{}

// RequestIDHeader is the header carrying the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// HeaderName overrides RequestIDHeader.
	HeaderName string
	// Generator creates new request IDs (default: UUID v4).
	Generator func() string
}

// RequestID assigns a unique identifier to each request for tracing and
// logging. An inbound ID is reused so upstream proxies keep their trace,
// otherwise a new one is generated. The ID is stored in context and echoed
// in the response header.
func RequestID() func(http.Handler) http.Handler {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with a custom header name or generator.
func RequestIDWithConfig(cfg RequestIDConfig) func(http.Handler) http.Handler {
	if cfg.HeaderName == "" {
		cfg.HeaderName = RequestIDHeader
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string { return uuid.New().String() }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(cfg.HeaderName)
			if id == "" {
				id = cfg.Generator()
			}

			w.Header().Set(cfg.HeaderName, id)
			ctx := context.WithValue(r.Context(), requestIDContextKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext retrieves the request ID stored by RequestID.
// Returns the ID and a boolean indicating whether it was found.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Logger receives the request lines (default: slog.Default()).
	Logger *slog.Logger
	// SkipPaths lists exact paths that are never logged, typically the
	// health probes that orchestrators poll every few seconds.
	SkipPaths []string
	// SlowRequestThreshold marks slower requests at warning level (default: 5s).
	SlowRequestThreshold time.Duration
}

// RequestLogger emits one structured line per request with method, path,
// status, latency, response size and client IP. Responses with a 5xx status
// log at error level, 4xx at warning.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return RequestLoggerWithConfig(LoggingConfig{Logger: log})
}

// RequestLoggerWithConfig is RequestLogger with skip paths and thresholds.
func RequestLoggerWithConfig(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(cfg.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			latency := time.Since(start)
			status := ww.Status()
			if status == 0 {
				// The handler never wrote a header; net/http sends 200.
				status = http.StatusOK
			}

			attrs := []slog.Attr{
				logger.Component("http"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(status),
				logger.BytesOut(int64(ww.BytesWritten())),
				logger.Latency(latency),
				logger.ClientIP(clientip.GetIP(r)),
			}
			if id, ok := RequestIDFromContext(r.Context()); ok {
				attrs = append(attrs, logger.RequestID(id))
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			case latency > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, "request completed", attrs...)
		})
	}
}

// Recover converts panics into 500 responses so a single bad request cannot
// take the process down. The panic value and stack are logged; the client
// gets a generic JSON error. http.ErrAbortHandler is re-raised because it is
// the sanctioned way to abort a response.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []slog.Attr{
					logger.Component("http"),
					slog.Any("panic", rec),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.Stack(),
				}
				if id, ok := RequestIDFromContext(r.Context()); ok {
					attrs = append(attrs, logger.RequestID(id))
				}
				log.LogAttrs(r.Context(), slog.LevelError, "panic recovered", attrs...)

				respondJSON(w, http.StatusInternalServerError, statusResponse{
					Status: "error",
					Error:  "internal server error",
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
