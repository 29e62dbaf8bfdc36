// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

// Package catalog defines the wine catalog record and the text
// normalization primitives shared by the matcher and the scoring engine.
//
// All free-text comparison in the application goes through Normalize,
// which case-folds, strips accents, and collapses punctuation to single
// spaces, so "Château Margaux" and "chateau   MARGAUX!" compare equal.
// Vintages are accepted only as bare four-digit years; non-vintage
// markers ("NV", "N.V.") are unknown, not zero.
package catalog
