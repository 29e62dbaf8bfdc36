// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

// Package recommend implements the recommendation orchestrator: a
// three-tier fallback that serves curated LLM-reranked picks when the
// offline cache is fresh and full enough, falls back to live personalized
// scoring when the user has profile or collaborative-filtering signals,
// and finally to a cold-start popularity blend so every user always
// receives a non-empty ranked list.
//
// The engine is stateless per request. All reads go through the
// DataProvider interface; the curated and profile reads degrade on error,
// only the candidate-pool read is fatal.
package recommend
