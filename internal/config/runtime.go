// Package config provides centralized configuration for tabguard runtime values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env var names understood by tabguard.
const (
	EnvDatabase         = "TABGUARD_DATABASE"
	EnvRedirectCooldown = "TABGUARD_REDIRECT_COOLDOWN"
	EnvMatchMode        = "TABGUARD_MATCH_MODE"
	EnvTick             = "TABGUARD_TICK"
)

// InMemory is the TABGUARD_DATABASE value that selects a throwaway store.
const InMemory = ":memory:"

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// Storage configuration
	Storage StorageConfig

	// Redirect configuration
	Redirect RedirectConfig

	// Watcher configuration
	Watcher WatcherConfig

	// envErrs holds environment values that could not be applied.
	envErrs []error
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Path is the database directory. Empty means the XDG data directory;
	// InMemory means a store that is discarded on exit.
	// Default: ""
	Path string
}

// RedirectConfig holds redirect decision configuration.
type RedirectConfig struct {
	// Cooldown is how long a redirected tab ignores further navigations.
	// Default: 2s
	Cooldown time.Duration

	// MatchMode selects how hostnames are compared with block-list entries.
	// It is stored as given (trimmed, lowercased) and checked by the caller.
	// Default: "substring"
	MatchMode string
}

// WatcherConfig holds configuration for the protection-state watcher that
// runs alongside serve.
type WatcherConfig struct {
	// Tick is the cron spec (with seconds) the watcher is evaluated on.
	// Default: "0 * * * * *" (every minute)
	Tick string
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Storage: StorageConfig{
			Path: "",
		},
		Redirect: RedirectConfig{
			Cooldown:  2000 * time.Millisecond,
			MatchMode: "substring",
		},
		Watcher: WatcherConfig{
			Tick: "0 * * * * *",
		},
	}
}

// InMemory reports whether the configured store is in-memory.
func (s StorageConfig) InMemory() bool {
	return s.Path == InMemory
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
// A .env file in the working directory is read first; variables already set in
// the environment win.
func initGlobal() *RuntimeConfig {
	_ = godotenv.Load()
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
// Malformed values leave the previous setting in place and are reported by
// Validate.
func (c *RuntimeConfig) loadFromEnv() {
	c.envErrs = nil

	// Storage configuration
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Storage.Path = v
	}

	// Redirect configuration
	if v := os.Getenv(EnvRedirectCooldown); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		switch {
		case err != nil:
			c.envErrs = append(c.envErrs, fmt.Errorf("%s=%q is not a duration (e.g. 2s, 1500ms)", EnvRedirectCooldown, v))
		case d < 0:
			c.envErrs = append(c.envErrs, fmt.Errorf("%s=%q must not be negative", EnvRedirectCooldown, v))
		default:
			c.Redirect.Cooldown = d
		}
	}
	if v := os.Getenv(EnvMatchMode); v != "" {
		c.Redirect.MatchMode = strings.ToLower(strings.TrimSpace(v))
	}

	// Watcher configuration
	if v := os.Getenv(EnvTick); v != "" {
		c.Watcher.Tick = v
	}
}

// LoadEnvFile applies variables from an explicit env file and reloads.
// Variables already present in the environment are not overridden.
func (c *RuntimeConfig) LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return err
	}
	c.loadFromEnv()
	return nil
}

// Validate reports environment values that were rejected while loading.
func (c *RuntimeConfig) Validate() error {
	return errors.Join(c.envErrs...)
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
