// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/cellarius/cellarius/internal/catalog"
	"github.com/cellarius/cellarius/internal/recommend/scoring"
)

// scorer is the shape both live scoring modes share.
type scorer interface {
	Score(wine *catalog.Wine) (float64, string)
}

// Engine is the recommendation orchestrator. Stateless per request and
// safe for concurrent use.
type Engine struct {
	cfg    *Config
	data   DataProvider
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewEngine(cfg *Config, data DataProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("data provider is required")
	}
	return &Engine{
		cfg:    cfg,
		data:   data,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend returns the ranked list for one user. Curated picks win when
// the offline cache holds enough fresh rows; otherwise the engine scores
// a recent candidate slice live, personalized when the user has signals
// and cold-start when not. The result is never empty as long as the
// catalog has priced wines.
func (e *Engine) Recommend(ctx context.Context, userID int64) (*Result, error) {
	logger := e.logger.With().Int64("user_id", userID).Logger()

	if result := e.tryCurated(ctx, userID, logger); result != nil {
		return result, nil
	}

	profile, userFactors := e.loadSignals(ctx, userID, logger)

	candidates, err := e.data.RecentPriced(ctx, e.cfg.CandidatePool)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}

	tier := TierColdStart
	var s scorer = scoring.NewColdStart(e.cfg.ColdStart)
	if profile.HasSignals() || len(userFactors) > 0 {
		tier = TierPersonalized
		s = scoring.NewPersonalized(e.cfg.Personalized, profile, userFactors,
			e.loadItemFactors(ctx, candidates, userFactors, logger))
	}

	wines := e.scoreAndRank(candidates, s)
	logger.Debug().
		Str("tier", tier.String()).
		Int("candidates", len(candidates)).
		Int("returned", len(wines)).
		Msg("recommendations computed")

	return &Result{Tier: tier, Wines: wines}, nil
}

// tryCurated serves the offline-rerank cache when it holds at least
// MinCurated fresh rows. Errors degrade to live scoring; a sparse cache
// is not padded.
func (e *Engine) tryCurated(ctx context.Context, userID int64, logger zerolog.Logger) *Result {
	rows, err := e.data.CuratedForUser(ctx, userID, e.cfg.TopK)
	if err != nil {
		logger.Warn().Err(err).Msg("curated cache read failed, falling through to live scoring")
		return nil
	}
	if len(rows) < e.cfg.MinCurated {
		return nil
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.WineID)
	}
	hydrated, err := e.data.WinesByIDs(ctx, ids)
	if err != nil {
		logger.Warn().Err(err).Msg("curated hydration failed, falling through to live scoring")
		return nil
	}
	byID := make(map[int64]catalog.Wine, len(hydrated))
	for _, w := range hydrated {
		byID[w.ID] = w
	}

	wines := make([]ScoredWine, 0, len(rows))
	for _, r := range rows {
		w, ok := byID[r.WineID]
		if !ok {
			// Catalog row deleted since the batch ran.
			continue
		}
		wines = append(wines, ScoredWine{Wine: w, Score: r.Score, Reason: r.Reason})
	}
	if len(wines) < e.cfg.MinCurated {
		return nil
	}

	logger.Debug().Int("curated", len(wines)).Msg("serving curated recommendations")
	return &Result{Tier: TierCurated, Wines: wines}
}

// loadSignals reads the user's profile and CF factors. Both reads degrade
// to absence on error so the request still gets a list.
func (e *Engine) loadSignals(ctx context.Context, userID int64, logger zerolog.Logger) (*Profile, []float64) {
	profile, err := e.data.ProfileForUser(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("profile read failed, treating user as cold-start")
		profile = nil
	}
	factors, err := e.data.UserFactors(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("user factor read failed, omitting cf term")
		factors = nil
	}
	return profile, factors
}

// loadItemFactors batch-loads CF item factors for the candidate pool.
// Skipped entirely when the user has no factors; degrades to nil on
// error so only the cf term drops.
func (e *Engine) loadItemFactors(ctx context.Context, candidates []catalog.Wine, userFactors []float64, logger zerolog.Logger) map[int64][]float64 {
	if len(userFactors) == 0 || len(candidates) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(candidates))
	for _, w := range candidates {
		ids = append(ids, w.ID)
	}
	factors, err := e.data.ItemFactors(ctx, ids)
	if err != nil {
		logger.Warn().Err(err).Msg("item factor read failed, omitting cf term")
		return nil
	}
	return factors
}

// scoreAndRank scores every candidate, sorts descending and keeps the
// top K. The sort is stable so ties keep catalog recency order.
func (e *Engine) scoreAndRank(candidates []catalog.Wine, s scorer) []ScoredWine {
	wines := make([]ScoredWine, 0, len(candidates))
	for i := range candidates {
		score, reason := s.Score(&candidates[i])
		wines = append(wines, ScoredWine{Wine: candidates[i], Score: score, Reason: reason})
	}
	sort.SliceStable(wines, func(i, j int) bool {
		return wines[i].Score > wines[j].Score
	})
	if len(wines) > e.cfg.TopK {
		wines = wines[:e.cfg.TopK]
	}
	return wines
}
