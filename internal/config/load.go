package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil pointer.
var ErrNilConfig = errors.New("config target must be a non-nil pointer")

var (
	dotenvOnce sync.Once

	// cache holds one loaded value per configuration type.
	cache sync.Map
)

// Load populates cfg from environment variables using its env struct tags.
// Each configuration type is parsed once per process; subsequent calls for the
// same type return the cached value. On the first call a .env file in the
// working directory is read, if present, without overriding variables already
// set in the environment.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		// Missing .env files are normal outside local development.
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	cached, _ := cache.LoadOrStore(typ, fresh)
	*cfg = cached.(T)
	return nil
}

// MustLoad is like Load but panics on failure. Intended for application
// startup where a missing required variable should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
