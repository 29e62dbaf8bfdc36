// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package scoring

import (
	"sort"
	"strings"
)

// Profile is a user's derived preference profile. Absent entirely for new
// users. Nil price bounds mean unbounded on that side.
type Profile struct {
	UserID       int64     `json:"user_id"`
	PriceMin     *float64  `json:"avg_price_min,omitempty"`
	PriceMax     *float64  `json:"avg_price_max,omitempty"`
	StyleVector  []float64 `json:"style_vector,omitempty"`
	TopVarietals []string  `json:"varietal_top3,omitempty"`
	TopRegions   []string  `json:"region_top3,omitempty"`
}

// HasSignals reports whether any field carries a usable preference
// signal. A profile row with all-empty fields does not count; such users
// are served the cold-start blend instead of an all-zero personalized
// pass.
func (p *Profile) HasSignals() bool {
	if p == nil {
		return false
	}
	return len(p.StyleVector) > 0 ||
		len(p.TopVarietals) > 0 ||
		len(p.TopRegions) > 0 ||
		p.PriceMin != nil ||
		p.PriceMax != nil
}

// PriceBounds returns the effective inclusive price window, defaulting to
// [0, +inf) when bounds are absent.
func (p *Profile) PriceBounds() (min, max float64) {
	min, max = 0, maxPrice
	if p == nil {
		return min, max
	}
	if p.PriceMin != nil {
		min = *p.PriceMin
	}
	if p.PriceMax != nil {
		max = *p.PriceMax
	}
	return min, max
}

const maxPrice = 1e18 // effectively unbounded

// TopStyleDims returns the indexes of the n largest style-vector
// components, largest first. Useful for explaining what a profile is
// actually keyed on.
func (p *Profile) TopStyleDims(n int) []int {
	if p == nil || len(p.StyleVector) == 0 || n <= 0 {
		return nil
	}
	idx := make([]int, len(p.StyleVector))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return p.StyleVector[idx[a]] > p.StyleVector[idx[b]]
	})
	if n > len(idx) {
		n = len(idx)
	}
	return idx[:n]
}

// lowerSet folds a string slice into a lookup set of lower-cased,
// trimmed entries.
func lowerSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}
