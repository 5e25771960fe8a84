// Package probe runs dependency health probes for readiness checks and the
// deployment diagnostic command. Each probe is wrapped in its own circuit
// breaker so one flapping dependency cannot hammer its backend through
// repeated deep health calls.
package probe

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/leodymann/wi-api/internal/ids"
	"github.com/leodymann/wi-api/internal/logger"
)

// Report status values. A single failing optional dependency degrades the
// service; a failing critical dependency marks it broken.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusError    = "error"
)

// DefaultTimeout bounds a single probe attempt.
const DefaultTimeout = 5 * time.Second

// Result is the outcome of one dependency probe.
type Result struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	Skipped   bool   `json:"skipped,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// Report aggregates one probe run.
type Report struct {
	RunID     string    `json:"run_id"`
	Status    string    `json:"status"`
	CheckedAt time.Time `json:"checked_at"`
	Probes    []Result  `json:"probes"`
}

// CheckFunc checks one dependency. It must respect ctx cancellation.
type CheckFunc func(ctx context.Context) error

// Probe is a named dependency check with its own circuit breaker.
type Probe struct {
	name     string
	critical bool
	check    CheckFunc
	breaker  *gobreaker.CircuitBreaker
}

// Func creates a probe for an optional dependency; its failure degrades the
// report without marking it broken.
func Func(name string, check CheckFunc) *Probe {
	return &Probe{
		name:    name,
		check:   check,
		breaker: newBreaker(name),
	}
}

// Critical creates a probe whose failure marks the whole report broken.
func Critical(name string, check CheckFunc) *Probe {
	p := Func(name, check)
	p.critical = true
	return p
}

// Skipped creates a placeholder for a disabled integration so reports still
// list it.
func Skipped(name string) *Probe {
	return &Probe{name: name}
}

// newBreaker trips after 3 consecutive failures and resets after 30 seconds
// in the open state.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}

// Runner executes a fixed set of probes.
type Runner struct {
	probes  []*Probe
	timeout time.Duration
	log     *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTimeout sets the per-probe timeout.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger for probe failures.
func WithLogger(log *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRunner creates a Runner over the given probes.
func NewRunner(probes []*Probe, opts ...RunnerOption) *Runner {
	r := &Runner{
		probes:  probes,
		timeout: DefaultTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes all probes in order and aggregates their results. Probes run
// sequentially so latencies are attributable to one dependency at a time.
func (r *Runner) Run(ctx context.Context) Report {
	report := Report{
		RunID:     ids.Must("CHK"),
		CheckedAt: time.Now().UTC(),
		Probes:    make([]Result, 0, len(r.probes)),
	}

	status := StatusOK
	for _, p := range r.probes {
		result := r.runProbe(ctx, p)
		report.Probes = append(report.Probes, result)

		if result.OK || result.Skipped {
			continue
		}
		if p.critical {
			status = StatusError
		} else if status == StatusOK {
			status = StatusDegraded
		}
	}
	report.Status = status
	return report
}

func (r *Runner) runProbe(ctx context.Context, p *Probe) Result {
	if p.check == nil {
		return Result{Name: p.name, OK: true, Skipped: true}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.check(ctx)
	})
	latency := time.Since(start).Milliseconds()

	if err != nil {
		msg := err.Error()
		if errors.Is(err, gobreaker.ErrOpenState) {
			msg = "circuit open"
		}
		r.log.Warn("dependency probe failed",
			logger.Component("probe"),
			slog.String("probe", p.name),
			logger.Latency(time.Since(start)),
			logger.Error(err),
		)
		return Result{Name: p.name, LatencyMs: latency, Error: msg}
	}

	return Result{Name: p.name, OK: true, LatencyMs: latency}
}
