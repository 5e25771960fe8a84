package probe_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leodymann/wi-api/internal/probe"
)

func TestRunnerRun(t *testing.T) {
	t.Parallel()

	healthy := func(ctx context.Context) error { return nil }
	broken := func(ctx context.Context) error { return errors.New("connection refused") }

	t.Run("all healthy reports ok", func(t *testing.T) {
		t.Parallel()

		runner := probe.NewRunner([]*probe.Probe{
			probe.Critical("database", healthy),
			probe.Func("storage", healthy),
		})

		report := runner.Run(context.Background())

		assert.Equal(t, probe.StatusOK, report.Status)
		require.Len(t, report.Probes, 2)
		assert.Equal(t, "database", report.Probes[0].Name)
		assert.True(t, report.Probes[0].OK)
		assert.True(t, report.Probes[1].OK)
	})

	t.Run("failing optional dependency degrades", func(t *testing.T) {
		t.Parallel()

		runner := probe.NewRunner([]*probe.Probe{
			probe.Critical("database", healthy),
			probe.Func("messaging", broken),
		})

		report := runner.Run(context.Background())

		assert.Equal(t, probe.StatusDegraded, report.Status)
		assert.True(t, report.Probes[0].OK)
		assert.False(t, report.Probes[1].OK)
		assert.Contains(t, report.Probes[1].Error, "connection refused")
	})

	t.Run("failing critical dependency is an error", func(t *testing.T) {
		t.Parallel()

		runner := probe.NewRunner([]*probe.Probe{
			probe.Critical("database", broken),
			probe.Func("messaging", broken),
		})

		report := runner.Run(context.Background())

		assert.Equal(t, probe.StatusError, report.Status)
	})

	t.Run("critical failure wins over later degradation", func(t *testing.T) {
		t.Parallel()

		runner := probe.NewRunner([]*probe.Probe{
			probe.Func("storage", broken),
			probe.Critical("database", broken),
			probe.Func("messaging", healthy),
		})

		report := runner.Run(context.Background())

		assert.Equal(t, probe.StatusError, report.Status)
	})

	t.Run("skipped probes do not affect status", func(t *testing.T) {
		t.Parallel()

		runner := probe.NewRunner([]*probe.Probe{
			probe.Critical("database", healthy),
			probe.Skipped("messaging"),
		})

		report := runner.Run(context.Background())

		assert.Equal(t, probe.StatusOK, report.Status)
		require.Len(t, report.Probes, 2)
		assert.True(t, report.Probes[1].Skipped)
		assert.True(t, report.Probes[1].OK)
	})

	t.Run("report carries run id and timestamp", func(t *testing.T) {
		t.Parallel()

		runner := probe.NewRunner(nil)
		report := runner.Run(context.Background())

		assert.True(t, strings.HasPrefix(report.RunID, "CHK-"), "run id %q", report.RunID)
		assert.False(t, report.CheckedAt.IsZero())
		assert.Equal(t, probe.StatusOK, report.Status)
	})

	t.Run("probe timeout is enforced", func(t *testing.T) {
		t.Parallel()

		blocked := func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}
		runner := probe.NewRunner(
			[]*probe.Probe{probe.Critical("database", blocked)},
			probe.WithTimeout(20*time.Millisecond),
		)

		report := runner.Run(context.Background())

		assert.Equal(t, probe.StatusError, report.Status)
		assert.Contains(t, report.Probes[0].Error, "context deadline exceeded")
	})

	t.Run("breaker opens after repeated failures", func(t *testing.T) {
		t.Parallel()

		runner := probe.NewRunner([]*probe.Probe{probe.Func("storage", broken)})

		for i := 0; i < 3; i++ {
			report := runner.Run(context.Background())
			assert.Contains(t, report.Probes[0].Error, "connection refused")
		}

		report := runner.Run(context.Background())
		assert.Equal(t, "circuit open", report.Probes[0].Error)
	})
}
