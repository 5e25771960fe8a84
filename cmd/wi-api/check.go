package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leodymann/wi-api/internal/auth"
	"github.com/leodymann/wi-api/internal/blibsend"
	"github.com/leodymann/wi-api/internal/database"
	"github.com/leodymann/wi-api/internal/probe"
	"github.com/leodymann/wi-api/internal/storage"
)

var checkTimeout time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run deployment diagnostics and exit",
	Long: `Check validates the environment contract, probes every configured
dependency once and prints a JSON report to stdout.

Unlike serve it does not abort on the first failure: every dependency is
probed so a broken deployment shows all its problems in one run. The exit
status is non-zero only when a required dependency fails.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "total time budget for the diagnostic run")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	runner := probe.NewRunner(diagnosticProbes(), probe.WithLogger(log))
	report := runner.Run(ctx)
	printReport(report)

	if report.Status == probe.StatusError {
		return fmt.Errorf("diagnostics failed: a required dependency is unavailable")
	}
	return nil
}

// diagnosticProbes builds the full probe set from configuration alone.
// Connections are opened inside each probe so one unreachable dependency
// does not hide the state of the others.
func diagnosticProbes() []*probe.Probe {
	probes := []*probe.Probe{
		probe.Critical("database", func(ctx context.Context) error {
			pool, err := database.Connect(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()
			return pool.Ping(ctx)
		}),
		probe.Func("storage", func(ctx context.Context) error {
			store, err := storage.New(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			return store.Healthcheck(ctx)
		}),
	}

	if cfg.Blibsend.Enabled() {
		probes = append(probes, probe.Func("messaging", func(ctx context.Context) error {
			client, err := blibsend.New(cfg.Blibsend)
			if err != nil {
				return err
			}
			return client.Healthcheck(ctx)
		}))
	} else {
		probes = append(probes, probe.Skipped("messaging"))
	}

	probes = append(probes, probe.Func("auth", func(ctx context.Context) error {
		issuer, err := auth.NewTokenIssuer(cfg.Auth)
		if err != nil {
			return err
		}
		return issuer.Healthcheck(ctx)
	}))

	return probes
}

func printReport(report probe.Report) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stdout, "{\"status\":%q}\n", report.Status)
	}
}
