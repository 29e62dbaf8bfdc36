// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package match

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cellarius/cellarius/internal/catalog"
)

// Query is a partial field set to match against the catalog. All fields
// are optional, but at least one must be non-empty for a search to return
// anything.
type Query struct {
	// Name is the label name, free text.
	Name string `json:"name,omitempty"`

	// Winery is the producer, free text.
	Winery string `json:"winery,omitempty"`

	// Vintage is the raw vintage string as entered or extracted. Anything
	// other than a bare four-digit year (including "NV") is unknown.
	Vintage string `json:"vintage,omitempty"`

	// Region is the production region, free text.
	Region string `json:"region,omitempty"`

	// Grapes is a free-text varietal list.
	Grapes string `json:"grapes,omitempty"`
}

// IsEmpty reports whether no usable field is set.
func (q *Query) IsEmpty() bool {
	return strings.TrimSpace(q.Name) == "" &&
		strings.TrimSpace(q.Winery) == "" &&
		strings.TrimSpace(q.Region) == "" &&
		strings.TrimSpace(q.Grapes) == "" &&
		catalog.NormalizeVintage(q.Vintage) == nil
}

// FromFreeText builds a Query from a single search box string: an inline
// four-digit year becomes the vintage, the first two tokens are treated as
// the name and the remainder as the winery. The heuristic errs on recall;
// ranking sorts it out.
func FromFreeText(q string) Query {
	out := Query{}
	if v := catalog.DetectVintage(q); v != nil {
		out.Vintage = fmt.Sprintf("%d", *v)
	}
	parts := strings.Fields(q)
	if len(parts) > 2 {
		out.Name = strings.Join(parts[:2], " ")
		out.Winery = strings.Join(parts[2:], " ")
	} else {
		out.Name = strings.Join(parts, " ")
	}
	return out
}

// Candidate is a catalog wine annotated with its rank score.
type Candidate struct {
	catalog.Wine

	// RankScore is the additive point total for this candidate.
	RankScore float64 `json:"rank_score"`
}

// RecallFilter describes the permissive OR filter used to pull the
// candidate pool from the store. Fields are normalized text; empty fields
// are not filtered on.
type RecallFilter struct {
	Name    string
	Winery  string
	Region  string
	Grapes  string
	Vintage *int
}

// CandidateStore pulls recall candidates from the catalog. Implementations
// must OR the non-empty filter fields so that a candidate matching any one
// field is returned; the matcher re-ranks the pool in full.
type CandidateStore interface {
	MatchCandidates(ctx context.Context, f RecallFilter, limit int) ([]catalog.Wine, error)
}

// Matcher ranks catalog candidates against partial queries.
// It is stateless and safe for concurrent use.
type Matcher struct {
	store  CandidateStore
	cfg    Config
	logger zerolog.Logger
}

// New creates a Matcher.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func New(store CandidateStore, cfg Config, logger zerolog.Logger) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Matcher{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "match").Logger(),
	}, nil
}

// Search returns up to limit candidates ranked descending by score, ties
// broken by catalog ID descending so the most recently added row wins.
// An empty query yields an empty result, not an error.
func (m *Matcher) Search(ctx context.Context, q Query, limit int) ([]Candidate, error) {
	if q.IsEmpty() {
		return []Candidate{}, nil
	}
	limit = m.clampLimit(limit)

	pool, err := m.recall(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return []Candidate{}, nil
	}

	ranked := m.rank(q, pool)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// BestMatch resolves AI-extracted label fields to a single catalog row.
// If the full-field query returns nothing it retries with only name and
// winery, swapped as mutual fallback. Returns nil when no candidate is
// found; it never fabricates a link.
func (m *Matcher) BestMatch(ctx context.Context, q Query) (*Candidate, error) {
	rows, err := m.Search(ctx, q, m.cfg.DefaultLimit)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		fallback := Query{
			Name:    firstNonEmpty(q.Name, q.Winery),
			Winery:  firstNonEmpty(q.Winery, q.Name),
			Vintage: q.Vintage,
		}
		rows, err = m.Search(ctx, fallback, m.cfg.DefaultLimit)
		if err != nil {
			return nil, err
		}
	}
	if len(rows) == 0 {
		m.logger.Debug().
			Str("name", q.Name).
			Str("winery", q.Winery).
			Msg("no catalog match for extracted label")
		return nil, nil
	}

	best := rows[0]
	return &best, nil
}

// clampLimit bounds the caller-supplied limit to [1, MaxLimit], applying
// the default when unset.
func (m *Matcher) clampLimit(limit int) int {
	if limit <= 0 {
		return m.cfg.DefaultLimit
	}
	if limit > m.cfg.MaxLimit {
		return m.cfg.MaxLimit
	}
	return limit
}

// recall pulls the deduplicated candidate pool for a query.
func (m *Matcher) recall(ctx context.Context, q Query) ([]catalog.Wine, error) {
	f := RecallFilter{
		Name:    catalog.Normalize(q.Name),
		Winery:  catalog.Normalize(q.Winery),
		Region:  catalog.Normalize(q.Region),
		Grapes:  catalog.Normalize(q.Grapes),
		Vintage: catalog.NormalizeVintage(q.Vintage),
	}
	pool, err := m.store.MatchCandidates(ctx, f, m.cfg.RecallLimit)
	if err != nil {
		return nil, fmt.Errorf("recall candidates: %w", err)
	}
	return catalog.Dedupe(pool), nil
}

// rank scores every pool row and sorts descending by score, then by ID
// descending.
func (m *Matcher) rank(q Query, pool []catalog.Wine) []Candidate {
	target := newRankTarget(q)

	ranked := make([]Candidate, 0, len(pool))
	for i := range pool {
		ranked = append(ranked, Candidate{
			Wine:      pool[i],
			RankScore: m.cfg.Weights.score(target, &pool[i]),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RankScore != ranked[j].RankScore {
			return ranked[i].RankScore > ranked[j].RankScore
		}
		return ranked[i].ID > ranked[j].ID
	})
	return ranked
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
