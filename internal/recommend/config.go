// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package recommend

import (
	"fmt"

	"github.com/cellarius/cellarius/internal/recommend/scoring"
)

// Config contains recommendation engine configuration.
type Config struct {
	// TopK is the number of recommendations returned per request.
	// Default: 24.
	TopK int `json:"top_k"`

	// MinCurated is the quality floor for serving the curated cache:
	// fewer fresh curated rows than this falls through to live scoring
	// instead of padding a sparse list. Default: 12.
	MinCurated int `json:"min_curated"`

	// CandidatePool is the size of the recent-wines candidate slice
	// loaded for live scoring. Default: 600.
	CandidatePool int `json:"candidate_pool"`

	// Personalized holds the personalized blend weights.
	Personalized scoring.PersonalizedWeights `json:"personalized"`

	// ColdStart holds the cold-start popularity blend weights.
	ColdStart scoring.ColdStartWeights `json:"cold_start"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		TopK:          24,
		MinCurated:    12,
		CandidatePool: 600,
		Personalized:  scoring.DefaultPersonalizedWeights(),
		ColdStart:     scoring.DefaultColdStartWeights(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("recommend.top_k must be positive, got %d", c.TopK)
	}
	if c.MinCurated < 1 {
		return fmt.Errorf("recommend.min_curated must be positive, got %d", c.MinCurated)
	}
	if c.MinCurated > c.TopK {
		return fmt.Errorf("recommend.min_curated must be <= recommend.top_k, got %d > %d", c.MinCurated, c.TopK)
	}
	if c.CandidatePool < c.TopK {
		return fmt.Errorf("recommend.candidate_pool must be >= recommend.top_k, got %d < %d", c.CandidatePool, c.TopK)
	}
	if c.ColdStart.PriceSanityCap <= 0 {
		return fmt.Errorf("recommend.cold_start.price_sanity_cap must be positive, got %v", c.ColdStart.PriceSanityCap)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
