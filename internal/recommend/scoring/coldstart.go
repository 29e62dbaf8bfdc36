// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package scoring

import (
	"strings"

	"github.com/cellarius/cellarius/internal/catalog"
)

// ColdStartWeights are the popularity-blend weights served to users
// without any profile signals.
type ColdStartWeights struct {
	// Rating weights the normalized catalog rating.
	Rating float64 `json:"rating"`

	// Investability weights the normalized investability score.
	Investability float64 `json:"investability"`

	// New is the flat bonus every candidate gets; the pool is already
	// restricted to recent additions.
	New float64 `json:"new"`

	// PriceSanity is the flat bonus for a plausible mid-range price,
	// 0 < price < PriceSanityCap.
	PriceSanity float64 `json:"price_sanity"`

	// PriceSanityCap is the exclusive upper bound of a "sane" price.
	PriceSanityCap float64 `json:"price_sanity_cap"`
}

// DefaultColdStartWeights returns the production blend.
func DefaultColdStartWeights() ColdStartWeights {
	return ColdStartWeights{
		Rating:         0.50,
		Investability:  0.30,
		New:            0.20,
		PriceSanity:    0.05,
		PriceSanityCap: 1000,
	}
}

// ColdStartScorer scores candidates on catalog signals alone.
type ColdStartScorer struct {
	weights ColdStartWeights
}

// NewColdStart builds a cold-start scorer.
func NewColdStart(w ColdStartWeights) *ColdStartScorer {
	return &ColdStartScorer{weights: w}
}

// Score returns the popularity score and reason trace for one candidate.
func (s *ColdStartScorer) Score(wine *catalog.Wine) (float64, string) {
	var score float64
	var reasons []string

	r := NormalizeRating(wine.RatingValue())
	score += s.weights.Rating * r
	if r > 0 {
		reasons = append(reasons, "rating")
	}

	inv := Clamp01(wine.InvestabilityValue() / 100)
	score += s.weights.Investability * inv
	if inv > 0 {
		reasons = append(reasons, "investability")
	}

	score += s.weights.New
	reasons = append(reasons, "new")

	if price := wine.PriceValue(); price > 0 && price < s.weights.PriceSanityCap {
		score += s.weights.PriceSanity
	}

	return Round3(score), strings.Join(reasons, "; ")
}

// NormalizeRating maps a catalog rating onto [0, 1]. Ratings above 10 are
// assumed to be on a 0-100 critic scale, anything else on a 0-5 consumer
// scale; both are clamped before dividing.
func NormalizeRating(r float64) float64 {
	if r > 10 {
		return Clamp01(r / 100)
	}
	if r < 0 {
		return 0
	}
	if r > 5 {
		r = 5
	}
	return r / 5
}
