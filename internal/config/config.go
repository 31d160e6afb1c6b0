// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// MinSessionSecretLength is the minimum required length for the
// session secret.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	DBPath        string `env:"SOUNDOFF_DB_PATH" envDefault:"./data/soundoff.db"`
	SessionSecret string `env:"SOUNDOFF_SESSION_SECRET,required"`
	ServerHost    string `env:"SOUNDOFF_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SOUNDOFF_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SOUNDOFF_ENV" envDefault:"development"`
	LogLevel      string `env:"SOUNDOFF_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"SOUNDOFF_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SOUNDOFF_CACHE_PREFIX" envDefault:"soundoff:"`
	CacheTTL     int    `env:"SOUNDOFF_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"SOUNDOFF_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Seeding configuration
	DoSeed bool `env:"SOUNDOFF_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in
// development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SOUNDOFF_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}
