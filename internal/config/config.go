// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Recommend RecommendConfig `koanf:"recommend"`
	Match     MatchConfig     `koanf:"match"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"` // 0 = use runtime.NumCPU()
	MaxOpenConns int    `koanf:"max_open_conns"`
}

// APIConfig holds HTTP API behavior settings.
type APIConfig struct {
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	TopK          int `koanf:"top_k"`
	MinCurated    int `koanf:"min_curated"`
	CandidatePool int `koanf:"candidate_pool"`
}

// MatchConfig holds catalog matcher settings.
type MatchConfig struct {
	WeightProfile string `koanf:"weight_profile"` // "label" or "search"
	RecallLimit   int    `koanf:"recall_limit"`
	DefaultLimit  int    `koanf:"default_limit"`
	MaxLimit      int    `koanf:"max_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
