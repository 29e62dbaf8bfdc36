// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package api

// MatchRequest is the POST /api/v1/catalog/match body. At least a name
// or a winery is needed for the fallback retry to have anything to work
// with; the handler enforces that beyond the per-field tags.
type MatchRequest struct {
	Name    string `json:"name" validate:"omitempty,max=200"`
	Winery  string `json:"winery" validate:"omitempty,max=200"`
	Vintage string `json:"vintage" validate:"omitempty,max=10"`
	Region  string `json:"region" validate:"omitempty,max=200"`
	Grapes  string `json:"grapes" validate:"omitempty,max=500"`
}

// SearchRequest is the bound form of GET /api/v1/catalog/search query
// parameters. Either Q (free text) or one of the structured fields must
// be set; the handler enforces that.
type SearchRequest struct {
	Q       string `validate:"omitempty,max=500"`
	Name    string `validate:"omitempty,max=200"`
	Winery  string `validate:"omitempty,max=200"`
	Vintage string `validate:"omitempty,max=10"`
	Region  string `validate:"omitempty,max=200"`
	Grapes  string `validate:"omitempty,max=500"`
	Limit   int    `validate:"omitempty,min=1,max=100"`
}
