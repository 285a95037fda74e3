// Copyright (c) 2026 Lodex. All rights reserved.
// Author: duy.phamquoc.vn@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Engine) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Lodex API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis) for resolved display names
	RedisURL string `env:"REDIS_URL,required"`

	// NameCacheTTL bounds how long a resolved display name may be served
	// from cache after the underlying translation changed.
	NameCacheTTL time.Duration `env:"NAME_CACHE_TTL" envDefault:"10m"`

	// Cryptographic keys for admin endpoint token verification
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Fuzzy matching knobs. These are design choices, not schema facts,
	// so they are exposed as configuration rather than hard-coded.
	FuzzyThreshold     float64 `env:"FUZZY_THRESHOLD"      envDefault:"0.3"`
	FuzzyMaxCandidates int     `env:"FUZZY_MAX_CANDIDATES" envDefault:"50"`

	// SnapshotBuildTimeout bounds the blocking I/O of an index (re)build.
	SnapshotBuildTimeout time.Duration `env:"SNAPSHOT_BUILD_TIMEOUT" envDefault:"60s"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.FuzzyThreshold <= 0 || cfg.FuzzyThreshold > 1 {
		return nil, fmt.Errorf("config: FUZZY_THRESHOLD must be in (0, 1], got %g", cfg.FuzzyThreshold)
	}

	if cfg.FuzzyMaxCandidates < 1 {
		return nil, fmt.Errorf("config: FUZZY_MAX_CANDIDATES must be positive, got %d", cfg.FuzzyMaxCandidates)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
