// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/cellarius/cellarius/internal/catalog"
	"github.com/cellarius/cellarius/internal/logging"
)

type fakeProvider struct {
	curated    []CuratedRecommendation
	curatedErr error

	profile    *Profile
	profileErr error

	userFactors    []float64
	userFactorsErr error

	candidates    []catalog.Wine
	candidatesErr error

	itemFactors    map[int64][]float64
	itemFactorsErr error

	wines map[int64]catalog.Wine
}

func (f *fakeProvider) CuratedForUser(_ context.Context, _ int64, limit int) ([]CuratedRecommendation, error) {
	if f.curatedErr != nil {
		return nil, f.curatedErr
	}
	rows := f.curated
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeProvider) ProfileForUser(_ context.Context, _ int64) (*Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeProvider) UserFactors(_ context.Context, _ int64) ([]float64, error) {
	return f.userFactors, f.userFactorsErr
}

func (f *fakeProvider) RecentPriced(_ context.Context, limit int) ([]catalog.Wine, error) {
	if f.candidatesErr != nil {
		return nil, f.candidatesErr
	}
	rows := f.candidates
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeProvider) WinesByIDs(_ context.Context, ids []int64) ([]catalog.Wine, error) {
	var out []catalog.Wine
	for _, id := range ids {
		if w, ok := f.wines[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeProvider) ItemFactors(_ context.Context, _ []int64) (map[int64][]float64, error) {
	return f.itemFactors, f.itemFactorsErr
}

var _ DataProvider = (*fakeProvider)(nil)

func floatPtr(v float64) *float64 { return &v }

func newTestEngine(t *testing.T, data DataProvider) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), data, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// curatedRows builds n curated rows with matching hydratable wines.
func curatedRows(n int) ([]CuratedRecommendation, map[int64]catalog.Wine) {
	rows := make([]CuratedRecommendation, 0, n)
	wines := make(map[int64]catalog.Wine, n)
	for i := 0; i < n; i++ {
		id := int64(100 + i)
		rows = append(rows, CuratedRecommendation{
			UserID: 1,
			WineID: id,
			Score:  0.9 - float64(i)*0.01,
			Reason: "LLM pick",
			Source: "rerank",
		})
		wines[id] = catalog.Wine{ID: id, Name: fmt.Sprintf("Wine %d", id)}
	}
	return rows, wines
}

func TestRecommendCuratedThreshold(t *testing.T) {
	tests := []struct {
		name     string
		curated  int
		wantTier Tier
	}{
		{"twelve curated rows serve directly", 12, TierCurated},
		{"eleven rows fall through to live scoring", 11, TierColdStart},
		{"empty cache falls through", 0, TierColdStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, wines := curatedRows(tt.curated)
			data := &fakeProvider{
				curated:    rows,
				wines:      wines,
				candidates: []catalog.Wine{{ID: 1, Price: floatPtr(20)}},
			}
			e := newTestEngine(t, data)

			result, err := e.Recommend(context.Background(), 1)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if result.Tier != tt.wantTier {
				t.Errorf("Tier = %v, want %v", result.Tier, tt.wantTier)
			}
			if len(result.Wines) == 0 {
				t.Error("Recommend() returned empty list")
			}
		})
	}
}

func TestRecommendCuratedPreservesOrderAndScores(t *testing.T) {
	rows, wines := curatedRows(12)
	data := &fakeProvider{curated: rows, wines: wines}
	e := newTestEngine(t, data)

	result, err := e.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(result.Wines) != 12 {
		t.Fatalf("got %d wines, want 12", len(result.Wines))
	}
	for i, w := range result.Wines {
		if w.ID != rows[i].WineID {
			t.Errorf("wines[%d].ID = %d, want %d", i, w.ID, rows[i].WineID)
		}
		if w.Score != rows[i].Score {
			t.Errorf("wines[%d].Score = %v, want %v", i, w.Score, rows[i].Score)
		}
		if w.Reason != rows[i].Reason {
			t.Errorf("wines[%d].Reason = %q, want %q", i, w.Reason, rows[i].Reason)
		}
	}
}

func TestRecommendCuratedHydrationGapsFallThrough(t *testing.T) {
	// 12 rows but only 10 still resolve to catalog wines: below the floor
	// after hydration, so the engine scores live instead.
	rows, wines := curatedRows(12)
	delete(wines, rows[0].WineID)
	delete(wines, rows[1].WineID)
	data := &fakeProvider{
		curated:    rows,
		wines:      wines,
		candidates: []catalog.Wine{{ID: 1, Price: floatPtr(20)}},
	}
	e := newTestEngine(t, data)

	result, err := e.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if result.Tier != TierColdStart {
		t.Errorf("Tier = %v, want cold_start after hydration gaps", result.Tier)
	}
}

func TestRecommendCuratedErrorDegrades(t *testing.T) {
	data := &fakeProvider{
		curatedErr: errors.New("cache table locked"),
		candidates: []catalog.Wine{{ID: 1, Price: floatPtr(20)}},
	}
	e := newTestEngine(t, data)

	result, err := e.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v, curated failures must degrade", err)
	}
	if result.Tier != TierColdStart {
		t.Errorf("Tier = %v, want cold_start", result.Tier)
	}
}

func TestRecommendModeSelection(t *testing.T) {
	candidates := []catalog.Wine{
		{ID: 1, Price: floatPtr(30), StyleVector: []float64{1, 0}},
		{ID: 2, Price: floatPtr(40), StyleVector: []float64{0, 1}},
	}

	tests := []struct {
		name        string
		profile     *Profile
		userFactors []float64
		wantTier    Tier
	}{
		{
			name:     "no profile is cold start",
			wantTier: TierColdStart,
		},
		{
			name:     "empty profile row is cold start",
			profile:  &Profile{UserID: 1},
			wantTier: TierColdStart,
		},
		{
			name:     "style vector selects personalized",
			profile:  &Profile{UserID: 1, StyleVector: []float64{1, 0}},
			wantTier: TierPersonalized,
		},
		{
			name:     "price bounds alone select personalized",
			profile:  &Profile{UserID: 1, PriceMin: floatPtr(20), PriceMax: floatPtr(60)},
			wantTier: TierPersonalized,
		},
		{
			name:        "cf factors without profile select personalized",
			userFactors: []float64{0.5, 0.5},
			wantTier:    TierPersonalized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &fakeProvider{
				profile:     tt.profile,
				userFactors: tt.userFactors,
				candidates:  candidates,
			}
			e := newTestEngine(t, data)

			result, err := e.Recommend(context.Background(), 1)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if result.Tier != tt.wantTier {
				t.Errorf("Tier = %v, want %v", result.Tier, tt.wantTier)
			}
		})
	}
}

func TestRecommendProfileErrorDegradesToColdStart(t *testing.T) {
	data := &fakeProvider{
		profileErr:     errors.New("profiles unavailable"),
		userFactorsErr: errors.New("factors unavailable"),
		candidates:     []catalog.Wine{{ID: 1, Price: floatPtr(20)}},
	}
	e := newTestEngine(t, data)

	result, err := e.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v, signal reads must degrade", err)
	}
	if result.Tier != TierColdStart {
		t.Errorf("Tier = %v, want cold_start", result.Tier)
	}
}

func TestRecommendCandidatePoolErrorIsFatal(t *testing.T) {
	data := &fakeProvider{candidatesErr: errors.New("catalog down")}
	e := newTestEngine(t, data)

	if _, err := e.Recommend(context.Background(), 1); err == nil {
		t.Fatal("Recommend() expected error when candidate pool load fails")
	}
}

func TestRecommendSortedAndCapped(t *testing.T) {
	// 30 candidates with ascending ratings: the result must be capped at
	// TopK and sorted non-increasing.
	candidates := make([]catalog.Wine, 30)
	for i := range candidates {
		r := float64(i%5) + 0.5
		candidates[i] = catalog.Wine{ID: int64(i + 1), Price: floatPtr(25), Rating: &r}
	}
	data := &fakeProvider{candidates: candidates}
	e := newTestEngine(t, data)

	result, err := e.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(result.Wines) != 24 {
		t.Errorf("got %d wines, want 24", len(result.Wines))
	}
	for i := 1; i < len(result.Wines); i++ {
		if result.Wines[i].Score > result.Wines[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %v > %v", i, result.Wines[i].Score, result.Wines[i-1].Score)
		}
	}
}

func TestRecommendStableTieBreak(t *testing.T) {
	// Identical candidates tie; stable sort must keep input (catalog
	// recency) order.
	candidates := []catalog.Wine{
		{ID: 10, Price: floatPtr(25)},
		{ID: 20, Price: floatPtr(25)},
		{ID: 30, Price: floatPtr(25)},
	}
	data := &fakeProvider{candidates: candidates}
	e := newTestEngine(t, data)

	result, err := e.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []int64{10, 20, 30}
	for i, id := range want {
		if result.Wines[i].ID != id {
			t.Errorf("wines[%d].ID = %d, want %d", i, result.Wines[i].ID, id)
		}
	}
}

func TestRecommendItemFactorErrorDropsCFOnly(t *testing.T) {
	data := &fakeProvider{
		userFactors:    []float64{1, 2},
		itemFactorsErr: errors.New("factors table missing"),
		candidates:     []catalog.Wine{{ID: 1, Price: floatPtr(20)}},
	}
	e := newTestEngine(t, data)

	result, err := e.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v, item factor read must degrade", err)
	}
	if result.Tier != TierPersonalized {
		t.Errorf("Tier = %v, want personalized", result.Tier)
	}
	for _, w := range result.Wines {
		if w.Reason != "" && w.Reason != "price" {
			t.Errorf("Reason = %q, cf must be absent", w.Reason)
		}
	}
}

func TestNewEngineValidation(t *testing.T) {
	logger := logging.NewTestLogger(io.Discard)

	if _, err := NewEngine(DefaultConfig(), nil, logger); err == nil {
		t.Error("NewEngine() with nil provider expected error")
	}

	cfg := DefaultConfig()
	cfg.TopK = 0
	if _, err := NewEngine(cfg, &fakeProvider{}, logger); err == nil {
		t.Error("NewEngine() with invalid config expected error")
	}

	e, err := NewEngine(nil, &fakeProvider{}, logger)
	if err != nil {
		t.Fatalf("NewEngine() with nil config error = %v", err)
	}
	if e == nil {
		t.Fatal("NewEngine() = nil engine")
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierCurated, "curated"},
		{TierPersonalized, "personalized"},
		{TierColdStart, "cold_start"},
		{Tier(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}
