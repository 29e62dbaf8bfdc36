// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/cellarius/cellarius/internal/logging"
	"github.com/cellarius/cellarius/internal/match"
	"github.com/cellarius/cellarius/internal/metrics"
	"github.com/cellarius/cellarius/internal/recommend"
	"github.com/cellarius/cellarius/internal/validation"
)

// maxRequestBody bounds POST bodies; match requests are tiny.
const maxRequestBody = 64 * 1024

// Recommender produces tiered recommendations for a user.
type Recommender interface {
	Recommend(ctx context.Context, userID int64) (*recommend.Result, error)
}

// CatalogMatcher ranks catalog candidates against partial queries.
type CatalogMatcher interface {
	Search(ctx context.Context, q match.Query, limit int) ([]match.Candidate, error)
	BestMatch(ctx context.Context, q match.Query) (*match.Candidate, error)
}

// Pinger reports backing store liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	recommender Recommender
	matcher     CatalogMatcher
	db          Pinger
}

// NewHandlers creates the handler set.
func NewHandlers(recommender Recommender, matcher CatalogMatcher, db Pinger) *Handlers {
	return &Handlers{
		recommender: recommender,
		matcher:     matcher,
		db:          db,
	}
}

// recommendationsResponse is the GET /recommendations/user/{userID} payload.
type recommendationsResponse struct {
	UserID int64                  `json:"user_id"`
	Tier   string                 `json:"tier"`
	Wines  []recommend.ScoredWine `json:"recommendations"`
}

// GetRecommendations handles GET /api/v1/recommendations/user/{userID}.
func (h *Handlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"userID must be a positive integer", nil)
		return
	}

	result, err := h.recommender.Recommend(r.Context(), userID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Int64("user_id", userID).
			Msg("Recommendation request failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to compute recommendations", nil)
		return
	}

	duration := time.Since(start)
	metrics.RecordRecommendation(result.Tier.String(), duration)

	respondJSON(w, http.StatusOK, recommendationsResponse{
		UserID: userID,
		Tier:   result.Tier.String(),
		Wines:  result.Wines,
	}, duration)
}

// searchResponse is the GET /catalog/search payload.
type searchResponse struct {
	Results []match.Candidate `json:"results"`
	Count   int               `json:"count"`
}

// SearchCatalog handles GET /api/v1/catalog/search. Accepts either a
// free-text q parameter or structured name/winery/vintage/region/grapes
// parameters; q takes precedence when both are present.
func (h *Handlers) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := r.URL.Query()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	req := SearchRequest{
		Q:       strings.TrimSpace(params.Get("q")),
		Name:    strings.TrimSpace(params.Get("name")),
		Winery:  strings.TrimSpace(params.Get("winery")),
		Vintage: strings.TrimSpace(params.Get("vintage")),
		Region:  strings.TrimSpace(params.Get("region")),
		Grapes:  strings.TrimSpace(params.Get("grapes")),
		Limit:   limit,
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	var query match.Query
	if req.Q != "" {
		query = match.FromFreeText(req.Q)
	} else {
		query = match.Query{
			Name:    req.Name,
			Winery:  req.Winery,
			Vintage: req.Vintage,
			Region:  req.Region,
			Grapes:  req.Grapes,
		}
	}
	if query.IsEmpty() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"at least one search parameter is required", nil)
		return
	}

	results, err := h.matcher.Search(r.Context(), query, req.Limit)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("query", sanitizeLogValue(req.Q)).
			Msg("Catalog search failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Catalog search failed", nil)
		return
	}

	metrics.RecordSearch()
	respondJSON(w, http.StatusOK, searchResponse{
		Results: results,
		Count:   len(results),
	}, time.Since(start))
}

// matchResponse is the POST /catalog/match payload.
type matchResponse struct {
	Match *match.Candidate `json:"match"`
}

// MatchWine handles POST /api/v1/catalog/match. Returns the single best
// catalog match for the submitted label fields, or MATCH_NOT_FOUND when
// nothing in the catalog resembles them.
func (h *Handlers) MatchWine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req MatchRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := decoder.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Request body must be valid JSON", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	query := match.Query{
		Name:    req.Name,
		Winery:  req.Winery,
		Vintage: req.Vintage,
		Region:  req.Region,
		Grapes:  req.Grapes,
	}
	if query.IsEmpty() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"at least one of name, winery, vintage, region, or grapes is required", nil)
		return
	}

	best, err := h.matcher.BestMatch(r.Context(), query)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("name", sanitizeLogValue(req.Name)).
			Str("winery", sanitizeLogValue(req.Winery)).
			Msg("Catalog match failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Catalog match failed", nil)
		return
	}

	metrics.RecordMatch(best != nil)
	if best == nil {
		respondError(w, http.StatusNotFound, "MATCH_NOT_FOUND",
			"No catalog entry matched the submitted fields", nil)
		return
	}

	respondJSON(w, http.StatusOK, matchResponse{Match: best}, time.Since(start))
}

// Health handles GET /healthz. Reports database liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check failed")
		respondError(w, http.StatusServiceUnavailable, "DATABASE_ERROR",
			"Database unreachable", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"}, 0)
}
