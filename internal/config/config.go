// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package config loads and validates Showlog's runtime configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all settings
//  2. Config File: optional YAML config file (config.yaml)
//  3. Environment Variables: override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Server.Port, cfg.Database.Path, etc. are now populated
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration. It is immutable after Load
// and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Metadata MetadataConfig `koanf:"metadata"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: listen port (default: 3857)
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: request timeout (default: 30s)
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings.
//
// Environment Variables:
//   - DUCKDB_PATH: database file path (default: /data/showlog.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DUCKDB_THREADS: DuckDB thread count, 0 = all cores (default: 0)
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// MetadataConfig holds settings for the external title metadata provider
// used to resolve episode counts and air dates during reclassification.
//
// Environment Variables:
//   - METADATA_BASE_URL: provider API base URL
//   - METADATA_API_KEY: provider API key
//   - METADATA_TIMEOUT: per-request timeout (default: 10s)
//   - METADATA_CACHE_TTL: details cache lifetime (default: 6h)
//   - METADATA_REFRESH_INTERVAL: reclassification cycle interval (default: 12h)
type MetadataConfig struct {
	BaseURL         string        `koanf:"base_url"`
	APIKey          string        `koanf:"api_key"`
	Timeout         time.Duration `koanf:"timeout"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// APIConfig holds API behavior settings.
//
// Environment Variables:
//   - API_DEFAULT_PAGE_SIZE: default page size for list endpoints (default: 20)
//   - API_MAX_PAGE_SIZE: maximum page size (default: 100)
//   - RATE_LIMIT_REQUESTS: requests allowed per window (default: 100)
//   - RATE_LIMIT_WINDOW: rate limit window (default: 1m)
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
type APIConfig struct {
	DefaultPageSize int           `koanf:"default_page_size"`
	MaxPageSize     int           `koanf:"max_page_size"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for malformed or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d: must be 1-65535", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("invalid server timeout %s: must be positive", c.Server.Timeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("invalid database threads %d: must be >= 0", c.Database.Threads)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("invalid default page size %d: must be >= 1", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("max page size %d is smaller than default page size %d",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("invalid rate limit %d: must be >= 1", c.API.RateLimitReqs)
	}
	if c.Metadata.BaseURL != "" && c.Metadata.Timeout <= 0 {
		return fmt.Errorf("invalid metadata timeout %s: must be positive", c.Metadata.Timeout)
	}
	return nil
}
