package httpapi

import (
	"net/http"

	"github.com/leodymann/wi-api/internal/logger"
	"github.com/leodymann/wi-api/internal/probe"
)

// health is the liveness probe. It answers 200 as long as the process can
// serve requests and never touches a dependency.
func (rt *router) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// readiness runs the registered dependency checks in order and reports 503
// on the first failure. With no checks registered it behaves like liveness.
func (rt *router) readiness(w http.ResponseWriter, r *http.Request) {
	for _, check := range rt.checks {
		if err := check(r.Context()); err != nil {
			rt.log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			respondJSON(w, http.StatusServiceUnavailable, statusResponse{
				Status: "error",
				Error:  "service unavailable",
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// deepHealth runs every dependency probe and returns the full report with
// per-probe latencies. The status code is 503 unless all non-skipped probes
// passed, so a degraded optional dependency still fails the deep check while
// readiness keeps routing traffic.
func (rt *router) deepHealth(w http.ResponseWriter, r *http.Request) {
	report := rt.runner.Run(r.Context())

	code := http.StatusOK
	if report.Status != probe.StatusOK {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, report)
}
