// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes to NFD, drops combining marks, and recomposes.
// "château" becomes "chateau", "Müller" becomes "Muller".
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	nonAlnum       = regexp.MustCompile(`[^a-z0-9]+`)
	multiSpace     = regexp.MustCompile(`\s+`)
	bareYear       = regexp.MustCompile(`^\d{4}$`)
	inlineYear     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	nonVintage     = regexp.MustCompile(`(?i)^n\.?v\.?$`)
	varietalSplit  = regexp.MustCompile(`[,&/;]+`)
	grapeTokenizer = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// Normalize applies the canonical text transform: lower-case, accents
// stripped, every run of punctuation or whitespace collapsed to a single
// space, leading and trailing space trimmed.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(accentStripper, s); err == nil {
		s = folded
	}
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// NormalizeVintage returns the vintage as a year if the input is a bare
// four-digit year, and nil otherwise. Non-vintage markers ("NV", "N.V.")
// are explicitly unknown rather than zero.
func NormalizeVintage(v string) *int {
	v = strings.TrimSpace(v)
	if v == "" || nonVintage.MatchString(v) {
		return nil
	}
	if !bareYear.MatchString(v) {
		return nil
	}
	year := 0
	for _, r := range v {
		year = year*10 + int(r-'0')
	}
	return &year
}

// DetectVintage finds an inline four-digit year (1900-2099) in free text.
// Used by the free-text search mode to lift a vintage out of a query like
// "opus one 2018". Returns nil when no year is present.
func DetectVintage(q string) *int {
	m := inlineYear.FindString(q)
	if m == "" {
		return nil
	}
	return NormalizeVintage(m)
}

// Varietals splits a grapes field on the catalog's delimiter set
// (comma, ampersand, slash, semicolon), lower-cases, collapses internal
// whitespace, and drops empty entries. Order is preserved.
func Varietals(grapes string) []string {
	if grapes == "" {
		return nil
	}
	parts := varietalSplit.Split(grapes, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(strings.ToLower(p))
		if v == "" {
			continue
		}
		out = append(out, multiSpace.ReplaceAllString(v, " "))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// GrapeTokens tokenizes a grapes field into a set of single-word tokens
// for overlap comparison. Unlike Varietals it splits on every non-letter
// boundary and drops the generic "blend" token, which carries no varietal
// signal. Duplicates are removed, order preserved.
func GrapeTokens(grapes string) []string {
	if grapes == "" {
		return nil
	}
	raw := grapeTokenizer.FindAllString(strings.ToLower(grapes), -1)
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t == "blend" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Jaccard computes Jaccard similarity between two token slices:
// |intersection| / |union|. Empty-vs-anything is 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}
	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
