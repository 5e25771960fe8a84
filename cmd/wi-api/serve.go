package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leodymann/wi-api/internal/auth"
	"github.com/leodymann/wi-api/internal/blibsend"
	"github.com/leodymann/wi-api/internal/database"
	"github.com/leodymann/wi-api/internal/httpapi"
	"github.com/leodymann/wi-api/internal/logger"
	"github.com/leodymann/wi-api/internal/probe"
	"github.com/leodymann/wi-api/internal/server"
	"github.com/leodymann/wi-api/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serve is the container entrypoint. It connects to the database, applies
pending migrations, wires the configured integrations and serves HTTP on
PORT until SIGINT or SIGTERM.

The database and JWT secret are required; a failure there exits non-zero.
Storage and messaging are optional and never block startup: when their
configuration is absent or broken the service runs degraded and reports it
through /health/deep.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, cfg.Database, log.With(logger.Component("database.migration"))); err != nil {
		if !errors.Is(err, database.ErrMigrationsDirNotFound) {
			return fmt.Errorf("migrations: %w", err)
		}
		log.Info("no migrations directory, skipping", logger.Component("database.migration"))
	}

	issuer, err := auth.NewTokenIssuer(cfg.Auth)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Error("storage unavailable, file features disabled",
			logger.Component("storage"), logger.Error(err))
		store = nil
	}

	var messenger *blibsend.Client
	if cfg.Blibsend.Enabled() {
		messenger, err = blibsend.New(cfg.Blibsend)
		if err != nil {
			log.Error("messaging unavailable, notifications disabled",
				logger.Component("blibsend"), logger.Error(err))
			messenger = nil
		}
	} else {
		log.Info("messaging not configured, skipping", logger.Component("blibsend"))
	}

	runner := probe.NewRunner(
		buildProbes(pool, store, messenger, issuer),
		probe.WithLogger(log),
	)

	readiness := []httpapi.CheckFunc{database.Healthcheck(pool)}
	if store != nil {
		readiness = append(readiness, store.Healthcheck)
	}

	uploadsDir := ""
	if store != nil && !cfg.Storage.UseS3() {
		uploadsDir = cfg.Storage.UploadRoot
	}

	handler := httpapi.New(httpapi.Config{
		AllowedOrigins: cfg.AllowedOrigins(),
		UploadsDir:     uploadsDir,
	},
		httpapi.WithLogger(log),
		httpapi.WithReadiness(readiness...),
		httpapi.WithProbes(runner),
	)

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log.With(logger.Component("server"))))
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Run(ctx, handler))

	log.Info("service started",
		slog.String("addr", cfg.Addr()),
		slog.String("environment", cfg.Environment),
		slog.Bool("s3", cfg.Storage.UseS3()),
		slog.Bool("messaging", messenger != nil),
	)

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	log.Info("service stopped")
	return nil
}

// buildProbes assembles the deep health check set. Only the database is
// critical; optional integrations degrade the report without failing it,
// and unconfigured ones show up as skipped rather than silently missing.
func buildProbes(pool *pgxpool.Pool, store storage.Storage, messenger *blibsend.Client, issuer *auth.TokenIssuer) []*probe.Probe {
	probes := []*probe.Probe{
		probe.Critical("database", database.Healthcheck(pool)),
	}

	if store != nil {
		probes = append(probes, probe.Func("storage", store.Healthcheck))
	} else {
		probes = append(probes, probe.Skipped("storage"))
	}

	if messenger != nil {
		probes = append(probes, probe.Func("messaging", messenger.Healthcheck))
	} else {
		probes = append(probes, probe.Skipped("messaging"))
	}

	probes = append(probes, probe.Func("auth", issuer.Healthcheck))
	return probes
}
