// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package match

import "fmt"

// Weights is the additive point system used to rank recall candidates.
// All comparisons are made on normalized text (catalog.Normalize); the
// grape tiers apply Jaccard similarity over grape token sets.
type Weights struct {
	// ExactName rewards an exact normalized name match.
	ExactName float64 `json:"exact_name"`

	// ExactWinery rewards an exact normalized winery match.
	ExactWinery float64 `json:"exact_winery"`

	// NamePrefix rewards a candidate name starting with the queried name.
	NamePrefix float64 `json:"name_prefix"`

	// NameSubstring rewards a substring relationship between the queried
	// name and the candidate name, in either direction.
	NameSubstring float64 `json:"name_substring"`

	// WineryInName rewards the queried winery appearing inside the
	// candidate name field (labels often carry the producer in the name).
	WineryInName float64 `json:"winery_in_name"`

	// WinerySubstring rewards the queried winery appearing inside the
	// candidate winery field.
	WinerySubstring float64 `json:"winery_substring"`

	// VintageMatch rewards an exact vintage match, applied only when the
	// query supplied a vintage.
	VintageMatch float64 `json:"vintage_match"`

	// GrapeStrong applies when grape-token Jaccard similarity >= 0.67.
	GrapeStrong float64 `json:"grape_strong"`

	// GrapeWeak applies when grape-token Jaccard similarity >= 0.34.
	GrapeWeak float64 `json:"grape_weak"`

	// GrapeMismatch applies when both sides have non-empty grape sets
	// with zero overlap. Negative: contradicting varietals are an
	// active signal against the match.
	GrapeMismatch float64 `json:"grape_mismatch"`

	// RegionExact rewards an exact normalized region match.
	RegionExact float64 `json:"region_exact"`

	// RegionSubstring rewards a substring region relationship, either
	// direction.
	RegionSubstring float64 `json:"region_substring"`

	// ImageBonus is a small tie-break in favor of rows with a bottle shot.
	ImageBonus float64 `json:"image_bonus"`
}

// GrapeStrongThreshold and GrapeWeakThreshold are the Jaccard cut-offs for
// the grape overlap tiers.
const (
	GrapeStrongThreshold = 0.67
	GrapeWeakThreshold   = 0.34
)

// LabelWeights is the weight profile tuned for resolving AI-extracted
// label fields against the catalog. This is the default profile.
func LabelWeights() Weights {
	return Weights{
		ExactName:       9,
		ExactWinery:     7,
		NamePrefix:      5,
		NameSubstring:   3,
		WineryInName:    2,
		WinerySubstring: 0,
		VintageMatch:    4,
		GrapeStrong:     18,
		GrapeWeak:       10,
		GrapeMismatch:   -15,
		RegionExact:     10,
		RegionSubstring: 6,
		ImageBonus:      2,
	}
}

// SearchWeights is the coarser profile used by the interactive free-text
// search, which weights exact name and winery hits much more heavily.
func SearchWeights() Weights {
	return Weights{
		ExactName:       40,
		ExactWinery:     25,
		NameSubstring:   24,
		WinerySubstring: 10,
		VintageMatch:    12,
		GrapeStrong:     18,
		GrapeWeak:       10,
		GrapeMismatch:   -15,
		RegionExact:     10,
		RegionSubstring: 6,
		ImageBonus:      2,
	}
}

// WeightsByName resolves a named weight profile. Known profiles are
// "label" and "search".
func WeightsByName(name string) (Weights, error) {
	switch name {
	case "", "label":
		return LabelWeights(), nil
	case "search":
		return SearchWeights(), nil
	default:
		return Weights{}, fmt.Errorf("unknown match weight profile %q", name)
	}
}

// Config contains matcher configuration.
type Config struct {
	// Weights is the active ranking point system.
	Weights Weights `json:"weights"`

	// RecallLimit is the maximum number of rows pulled from the store
	// before re-ranking. Default: 200.
	RecallLimit int `json:"recall_limit"`

	// DefaultLimit is the result count when the caller does not specify
	// one. Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the caller-supplied limit. Default: 100.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns a Config with the label weight profile and
// production limits.
func DefaultConfig() Config {
	return Config{
		Weights:      LabelWeights(),
		RecallLimit:  200,
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.RecallLimit < 1 {
		return fmt.Errorf("match.recall_limit must be positive, got %d", c.RecallLimit)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("match.default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("match.max_limit must be >= match.default_limit, got %d < %d", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}
