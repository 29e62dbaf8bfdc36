// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

// Package match implements fuzzy, multi-field search over the wine catalog
// and single-best-match resolution for label-scan extracted fields.
//
// The store query is a deliberately permissive recall net (OR-combined LIKE
// filters); it exists only to avoid excluding true matches. All ranking is
// done here, in application code, with a single additive point system whose
// weights are named and configurable. Two weight presets are provided:
// the label-match profile (default) and the coarser free-text search
// profile that predates it.
//
// BestMatch never links silently: callers are expected to present the
// resolved candidate for human confirmation.
package match
