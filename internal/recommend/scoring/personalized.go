// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/cellarius/cellarius/internal/catalog"
)

// PersonalizedWeights are the blend weights for the personalized scorer.
type PersonalizedWeights struct {
	// CF weights the squashed collaborative-filtering affinity.
	CF float64 `json:"cf"`

	// StyleWithCF weights cosine style similarity when a CF term was
	// applied for the candidate.
	StyleWithCF float64 `json:"style_with_cf"`

	// StyleWithoutCF weights style similarity when CF is unavailable;
	// style carries more of the blend on its own.
	StyleWithoutCF float64 `json:"style_without_cf"`

	// PriceFit is the flat bonus for a price inside the profile window.
	PriceFit float64 `json:"price_fit"`

	// Varietal is the flat bonus for the first grape token found in the
	// user's top varietals.
	Varietal float64 `json:"varietal"`

	// Region is the flat bonus for a region in the user's top regions.
	Region float64 `json:"region"`

	// Recency is the flat participation bonus every candidate gets; the
	// pool is already restricted to recent catalog additions upstream.
	Recency float64 `json:"recency"`
}

// DefaultPersonalizedWeights returns the production blend.
func DefaultPersonalizedWeights() PersonalizedWeights {
	return PersonalizedWeights{
		CF:             0.60,
		StyleWithCF:    0.25,
		StyleWithoutCF: 0.55,
		PriceFit:       0.10,
		Varietal:       0.10,
		Region:         0.05,
		Recency:        0.10,
	}
}

// PersonalizedScorer scores candidates against one user's profile and CF
// factors. Build it once per request; Score is pure.
type PersonalizedScorer struct {
	weights     PersonalizedWeights
	profile     *Profile
	userFactors []float64
	itemFactors map[int64][]float64

	priceMin  float64
	priceMax  float64
	varietals map[string]struct{}
	regions   map[string]struct{}
}

// NewPersonalized builds a scorer for one user. userFactors and
// itemFactors may be nil; the CF term is simply omitted then.
func NewPersonalized(w PersonalizedWeights, profile *Profile, userFactors []float64, itemFactors map[int64][]float64) *PersonalizedScorer {
	s := &PersonalizedScorer{
		weights:     w,
		profile:     profile,
		userFactors: userFactors,
		itemFactors: itemFactors,
	}
	s.priceMin, s.priceMax = profile.PriceBounds()
	if profile != nil {
		s.varietals = lowerSet(profile.TopVarietals)
		s.regions = lowerSet(profile.TopRegions)
	}
	return s
}

// Score returns the blended score and the semicolon-joined reason trace
// for one candidate. Missing fields drop their term rather than erroring.
func (s *PersonalizedScorer) Score(wine *catalog.Wine) (float64, string) {
	var score float64
	var reasons []string

	cfApplied := false
	if len(s.userFactors) > 0 {
		if item, ok := s.itemFactors[wine.ID]; ok && len(item) > 0 {
			score += s.weights.CF * SquashAffinity(Dot(s.userFactors, item))
			reasons = append(reasons, "cf")
			cfApplied = true
		}
	}

	if s.profile != nil && len(s.profile.StyleVector) > 0 && len(wine.StyleVector) > 0 {
		sim := Cosine(s.profile.StyleVector, wine.StyleVector)
		styleWeight := s.weights.StyleWithoutCF
		if cfApplied {
			styleWeight = s.weights.StyleWithCF
		}
		score += styleWeight * sim
		reasons = append(reasons, "style "+formatSim(sim))
	}

	if price := wine.PriceValue(); price >= s.priceMin && price <= s.priceMax {
		score += s.weights.PriceFit
		reasons = append(reasons, "price")
	}

	if len(s.varietals) > 0 {
		for _, v := range wine.Varietals() {
			if _, ok := s.varietals[v]; ok {
				score += s.weights.Varietal
				reasons = append(reasons, "varietal")
				break
			}
		}
	}

	if len(s.regions) > 0 {
		region := strings.ToLower(strings.TrimSpace(wine.Region))
		if _, ok := s.regions[region]; ok {
			score += s.weights.Region
			reasons = append(reasons, "region")
		}
	}

	score += s.weights.Recency

	return Round3(score), strings.Join(reasons, "; ")
}

// formatSim renders a similarity rounded to two decimals without trailing
// zeros, so 0.5 stays "0.5" and 1.0 stays "1".
func formatSim(sim float64) string {
	return strconv.FormatFloat(math.Round(sim*100)/100, 'f', -1, 64)
}
