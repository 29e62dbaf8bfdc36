// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

// Package api provides the HTTP layer: a Chi router with CORS, rate
// limiting, and request-ID middleware, plus handlers for the
// recommendation and catalog-matching endpoints.
//
// All responses use the envelope defined in internal/models:
//
//	{"status": "success", "data": {...}, "metadata": {...}}
//	{"status": "error", "error": {"code": "...", "message": "..."}}
package api
