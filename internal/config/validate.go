// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateMatch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required (set DUCKDB_PATH)")
	}
	if c.Database.MaxMemory == "" {
		return fmt.Errorf("database.max_memory is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_reqs must be positive, got %d", c.API.RateLimitReqs)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive, got %v", c.API.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.TopK < 1 {
		return fmt.Errorf("recommend.top_k must be positive, got %d", c.Recommend.TopK)
	}
	if c.Recommend.MinCurated < 1 || c.Recommend.MinCurated > c.Recommend.TopK {
		return fmt.Errorf("recommend.min_curated must be in [1, top_k], got %d", c.Recommend.MinCurated)
	}
	if c.Recommend.CandidatePool < c.Recommend.TopK {
		return fmt.Errorf("recommend.candidate_pool must be >= recommend.top_k, got %d", c.Recommend.CandidatePool)
	}
	return nil
}

func (c *Config) validateMatch() error {
	switch c.Match.WeightProfile {
	case "", "label", "search":
	default:
		return fmt.Errorf("match.weight_profile must be \"label\" or \"search\", got %q", c.Match.WeightProfile)
	}
	if c.Match.RecallLimit < 1 {
		return fmt.Errorf("match.recall_limit must be positive, got %d", c.Match.RecallLimit)
	}
	if c.Match.DefaultLimit < 1 {
		return fmt.Errorf("match.default_limit must be positive, got %d", c.Match.DefaultLimit)
	}
	if c.Match.MaxLimit < c.Match.DefaultLimit {
		return fmt.Errorf("match.max_limit must be >= match.default_limit, got %d", c.Match.MaxLimit)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("logging.level must be a zerolog level, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be \"json\" or \"console\", got %q", c.Logging.Format)
	}
	return nil
}
