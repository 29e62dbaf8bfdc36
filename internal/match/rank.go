// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package match

import (
	"strings"

	"github.com/cellarius/cellarius/internal/catalog"
)

// rankTarget holds the normalized query fields computed once per search.
type rankTarget struct {
	name    string
	winery  string
	region  string
	grapes  []string
	vintage *int
}

func newRankTarget(q Query) rankTarget {
	return rankTarget{
		name:    catalog.Normalize(q.Name),
		winery:  catalog.Normalize(q.Winery),
		region:  catalog.Normalize(q.Region),
		grapes:  catalog.GrapeTokens(q.Grapes),
		vintage: catalog.NormalizeVintage(q.Vintage),
	}
}

// score computes the additive point total for one candidate. Every field
// contributes independently; absent query fields contribute nothing.
func (w *Weights) score(t rankTarget, wine *catalog.Wine) float64 {
	var score float64

	score += w.scoreName(t, wine)
	score += w.scoreWinery(t, wine)
	score += w.scoreVintage(t, wine)
	score += w.scoreGrapes(t, wine)
	score += w.scoreRegion(t, wine)

	if wine.ImageURL != "" {
		score += w.ImageBonus
	}
	return score
}

func (w *Weights) scoreName(t rankTarget, wine *catalog.Wine) float64 {
	if t.name == "" {
		return 0
	}
	name := catalog.Normalize(wine.Name)
	if name == "" {
		return 0
	}
	switch {
	case name == t.name:
		return w.ExactName
	case strings.HasPrefix(name, t.name):
		return w.NamePrefix
	case strings.Contains(name, t.name) || strings.Contains(t.name, name):
		return w.NameSubstring
	}
	return 0
}

func (w *Weights) scoreWinery(t rankTarget, wine *catalog.Wine) float64 {
	if t.winery == "" {
		return 0
	}
	var score float64
	winery := catalog.Normalize(wine.Winery)
	if winery != "" {
		switch {
		case winery == t.winery:
			score += w.ExactWinery
		case strings.Contains(winery, t.winery) || strings.Contains(t.winery, winery):
			score += w.WinerySubstring
		}
	}
	// Producers often appear in the label name itself.
	if name := catalog.Normalize(wine.Name); name != "" && strings.Contains(name, t.winery) {
		score += w.WineryInName
	}
	return score
}

func (w *Weights) scoreVintage(t rankTarget, wine *catalog.Wine) float64 {
	if t.vintage == nil || wine.Vintage == nil {
		return 0
	}
	if *t.vintage == *wine.Vintage {
		return w.VintageMatch
	}
	return 0
}

func (w *Weights) scoreGrapes(t rankTarget, wine *catalog.Wine) float64 {
	if len(t.grapes) == 0 {
		return 0
	}
	tokens := catalog.GrapeTokens(wine.Grapes)
	if len(tokens) == 0 {
		return 0
	}
	sim := catalog.Jaccard(t.grapes, tokens)
	switch {
	case sim >= GrapeStrongThreshold:
		return w.GrapeStrong
	case sim >= GrapeWeakThreshold:
		return w.GrapeWeak
	case sim == 0:
		return w.GrapeMismatch
	}
	return 0
}

func (w *Weights) scoreRegion(t rankTarget, wine *catalog.Wine) float64 {
	if t.region == "" {
		return 0
	}
	region := catalog.Normalize(wine.Region)
	if region == "" {
		return 0
	}
	switch {
	case region == t.region:
		return w.RegionExact
	case strings.Contains(region, t.region) || strings.Contains(t.region, region):
		return w.RegionSubstring
	}
	return 0
}
