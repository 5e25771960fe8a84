// Package config defines the environment contract of the wi-api service and
// provides type-safe loading of it.
//
// Every runtime setting comes from environment variables. The composed Config
// struct is the single source of truth for which variables exist, which are
// required, and what their defaults are. Loading uses the caarlos0/env library
// for parsing and caches each configuration type so repeated loads are cheap
// and consistent.
//
// A .env file in the working directory is read once on first use, which keeps
// local development convenient without affecting containerized deployments
// where no such file exists.
//
// Typical startup:
//
//	var cfg config.Config
//	if err := config.Load(&cfg); err != nil {
//		// the error names the missing or malformed variable
//	}
//	if err := cfg.Validate(); err != nil {
//		// environment-dependent rules, e.g. origins required in production
//	}
package config
