package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/leodymann/wi-api/internal/config"
	"github.com/leodymann/wi-api/internal/logger"
)

var (
	envFile  string
	logLevel string

	// cfg and log are populated by PersistentPreRunE and shared with all
	// subcommands.
	cfg config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wi-api",
	Short: "wi-api backend service",
	Long: `wi-api is the backend API service.

All configuration comes from environment variables so the same container
image runs unchanged across environments. Required variables are validated
on startup and any missing one aborts the process with an error naming it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to an additional .env file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Variables already present in the environment win over file values,
		// so a deployment can always override a baked-in .env.
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load env file %s: %w", envFile, err)
			}
		}

		if err := config.Load(&cfg); err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log = newLogger(cfg)
		logger.SetAsDefault(log)
		return nil
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

// Execute runs the CLI. Any error, including a configuration error naming a
// missing variable, exits non-zero so orchestrators see the failed start.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	preset := logger.WithDevelopment
	switch cfg.Environment {
	case config.EnvProduction:
		preset = logger.WithProduction
	case config.EnvStaging:
		preset = logger.WithStaging
	}

	return logger.New(
		preset(cfg.AppName),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
}
