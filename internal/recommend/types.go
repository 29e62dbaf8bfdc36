// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package recommend

import (
	"context"
	"time"

	"github.com/cellarius/cellarius/internal/catalog"
	"github.com/cellarius/cellarius/internal/recommend/scoring"
)

// Profile is a user's derived preference profile.
type Profile = scoring.Profile

// Tier identifies which fallback tier produced a recommendation list.
type Tier int

const (
	// TierCurated serves precomputed LLM-reranked picks from the cache.
	TierCurated Tier = iota

	// TierPersonalized blends CF affinity, style similarity and taste
	// bonuses live per request.
	TierPersonalized

	// TierColdStart ranks on catalog signals alone for users without any
	// profile or CF history.
	TierColdStart
)

// String returns the tier name used in logs, metrics and API payloads.
func (t Tier) String() string {
	switch t {
	case TierCurated:
		return "curated"
	case TierPersonalized:
		return "personalized"
	case TierColdStart:
		return "cold_start"
	default:
		return "unknown"
	}
}

// ScoredWine is a catalog wine annotated with its relevance score and a
// short reason trace. Ephemeral, created per request.
type ScoredWine struct {
	catalog.Wine

	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// CuratedRecommendation is one precomputed pick from the offline
// LLM-rerank batch. Read-only here; the cron job owns the write path.
type CuratedRecommendation struct {
	UserID    int64     `json:"user_id"`
	WineID    int64     `json:"wine_id"`
	Score     float64   `json:"score"`
	Reason    string    `json:"reason"`
	Source    string    `json:"source"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Result is a ranked recommendation list plus the tier that produced it.
type Result struct {
	Tier  Tier         `json:"tier"`
	Wines []ScoredWine `json:"wines"`
}

// CuratedStore reads the offline-rerank cache. Implementations must
// filter to source='rerank' rows that have not expired, ordered by score
// descending.
type CuratedStore interface {
	CuratedForUser(ctx context.Context, userID int64, limit int) ([]CuratedRecommendation, error)
}

// ProfileStore reads user preference profiles and CF user factors. Both
// return nil (not an error) for users with no row.
type ProfileStore interface {
	ProfileForUser(ctx context.Context, userID int64) (*Profile, error)
	UserFactors(ctx context.Context, userID int64) ([]float64, error)
}

// CandidateProvider reads the catalog side: the bounded recent candidate
// pool, wine hydration by id, and CF item factors batch-loaded by id.
type CandidateProvider interface {
	RecentPriced(ctx context.Context, limit int) ([]catalog.Wine, error)
	WinesByIDs(ctx context.Context, ids []int64) ([]catalog.Wine, error)
	ItemFactors(ctx context.Context, ids []int64) (map[int64][]float64, error)
}

// DataProvider is everything the engine reads. A single store normally
// implements all three facets.
type DataProvider interface {
	CuratedStore
	ProfileStore
	CandidateProvider
}
