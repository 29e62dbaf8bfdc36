// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

// Package database provides the DuckDB-backed store for the wine catalog,
// user preference profiles, collaborative-filtering factor vectors and the
// curated recommendation cache.
//
// The store is read-mostly: the recommendation engine and catalog matcher
// only read, while the offline batch jobs (profile derivation, CF
// training, LLM rerank) own the write paths. Style vectors and CF factors
// are stored as JSON arrays and decoded on scan.
package database
