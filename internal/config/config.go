// Package config holds the runtime configuration and the fixed site
// conventions (reserved directory names, substitution tokens, passthrough
// extensions).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gh-sh4/bloggg/internal/errors"
)

// Environment variable names. Tuning knobs deliberately live in the
// environment so the CLI surface stays at the three documented flags.
const (
	EnvLogLevel     = "BLOGGG_LOG_LEVEL"
	EnvMetricsAddr  = "BLOGGG_METRICS_ADDR"
	EnvRebuildEvery = "BLOGGG_REBUILD_EVERY"
)

// Config is the resolved runtime configuration for one invocation.
type Config struct {
	InputDir  string
	OutputDir string
	Watch     bool

	// MetricsAddr, when non-empty, serves Prometheus metrics on that address
	// while watching.
	MetricsAddr string

	// RebuildEvery, when non-zero, schedules a periodic full rebuild in watch
	// mode as a safety net against missed filesystem events.
	RebuildEvery time.Duration
}

// Load builds a Config from the parsed CLI values plus environment overrides.
// A .env / .env.local file is honored without overriding the real environment.
func Load(inputDir, outputDir string, watch bool) (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Watch:       watch,
		MetricsAddr: os.Getenv(EnvMetricsAddr),
	}

	if v := os.Getenv(EnvRebuildEvery); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal,
				fmt.Sprintf("invalid %s value %q", EnvRebuildEvery, v))
		}
		cfg.RebuildEvery = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fatal configuration invariants.
func (c *Config) Validate() error {
	st, err := os.Stat(c.InputDir)
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal,
			fmt.Sprintf("input directory %s does not exist", c.InputDir))
	}
	if !st.IsDir() {
		return errors.New(errors.CategoryConfig, errors.SeverityFatal,
			fmt.Sprintf("input path %s is not a directory", c.InputDir))
	}
	if c.OutputDir == "" {
		return errors.New(errors.CategoryConfig, errors.SeverityFatal, "output directory not set")
	}
	return nil
}

// LogLevel resolves the slog level from the environment, defaulting to Info.
func LogLevel() slog.Level {
	switch os.Getenv(EnvLogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadEnvFile loads the first of .env/.env.local if present. Existing process
// environment variables win over file values.
func loadEnvFile() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", "file", name, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "file", name)
		return
	}
}
