// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package match

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/cellarius/cellarius/internal/catalog"
	"github.com/cellarius/cellarius/internal/logging"
)

type fakeStore struct {
	wines []catalog.Wine
	err   error

	lastFilter RecallFilter
	lastLimit  int
}

func (f *fakeStore) MatchCandidates(_ context.Context, filter RecallFilter, limit int) ([]catalog.Wine, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.wines, nil
}

func intPtr(v int) *int { return &v }

func newTestMatcher(t *testing.T, store CandidateStore, cfg Config) *Matcher {
	t.Helper()
	m, err := New(store, cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestSearchEmptyQuery(t *testing.T) {
	store := &fakeStore{wines: []catalog.Wine{{ID: 1, Name: "Barolo"}}}
	m := newTestMatcher(t, store, DefaultConfig())

	rows, err := m.Search(context.Background(), Query{Vintage: "NV"}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Search() on empty query returned %d rows, want 0", len(rows))
	}
	if store.lastLimit != 0 {
		t.Error("Search() on empty query should not hit the store")
	}
}

func TestSearchStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	m := newTestMatcher(t, store, DefaultConfig())

	if _, err := m.Search(context.Background(), Query{Name: "Barolo"}, 10); err == nil {
		t.Fatal("Search() expected error when store fails")
	}
}

func TestSearchLimitClamp(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero applies default", 0, 10},
		{"negative applies default", -3, 10},
		{"within range kept", 5, 5},
		{"above max clamped", 500, 100},
	}

	pool := make([]catalog.Wine, 120)
	for i := range pool {
		pool[i] = catalog.Wine{ID: int64(i + 1), Name: "Barolo"}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatcher(t, &fakeStore{wines: pool}, DefaultConfig())
			rows, err := m.Search(context.Background(), Query{Name: "Barolo"}, tt.limit)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(rows) != tt.want {
				t.Errorf("Search() returned %d rows, want %d", len(rows), tt.want)
			}
		})
	}
}

func TestSearchRanking(t *testing.T) {
	tests := []struct {
		name      string
		query     Query
		wines     []catalog.Wine
		wantOrder []int64
	}{
		{
			name:  "exact name beats substring",
			query: Query{Name: "Barolo"},
			wines: []catalog.Wine{
				{ID: 1, Name: "Barolo Riserva"},
				{ID: 2, Name: "Barolo"},
			},
			wantOrder: []int64{2, 1},
		},
		{
			name:  "vintage breaks name tie",
			query: Query{Name: "Opus One", Vintage: "2018"},
			wines: []catalog.Wine{
				{ID: 1, Name: "Opus One", Vintage: intPtr(2015)},
				{ID: 2, Name: "Opus One", Vintage: intPtr(2018)},
			},
			wantOrder: []int64{2, 1},
		},
		{
			name:  "unsupplied vintage awards nothing",
			query: Query{Name: "Opus One"},
			wines: []catalog.Wine{
				{ID: 1, Name: "Opus One", Vintage: intPtr(2015)},
				{ID: 2, Name: "Opus One", Vintage: intPtr(2018)},
			},
			wantOrder: []int64{2, 1}, // pure id tie-break
		},
		{
			name:  "grape mismatch pushes candidate down",
			query: Query{Name: "Reserve", Grapes: "Cabernet Sauvignon"},
			wines: []catalog.Wine{
				{ID: 1, Name: "Reserve", Grapes: "Chardonnay"},
				{ID: 2, Name: "Reserve Selection", Grapes: "Cabernet Sauvignon"},
			},
			wantOrder: []int64{2, 1},
		},
		{
			name:  "winery in name field scores",
			query: Query{Winery: "Gaja"},
			wines: []catalog.Wine{
				{ID: 1, Name: "Gaja Barbaresco", Winery: "Angelo"},
				{ID: 2, Name: "Barbaresco", Winery: "Produttori"},
			},
			wantOrder: []int64{1, 2},
		},
		{
			// The label profile scores winery only on an exact winery hit
			// or the producer appearing in the name field; a partial
			// winery-field overlap earns nothing and must not tie.
			name:  "partial winery field overlap ranks below winery in name",
			query: Query{Winery: "Margaux"},
			wines: []catalog.Wine{
				{ID: 9, Winery: "Chateau Margaux Estates"},
				{ID: 1, Name: "Margaux Rouge"},
			},
			wantOrder: []int64{1, 9},
		},
		{
			name:  "accented query matches plain row",
			query: Query{Name: "Chateau Leoville"},
			wines: []catalog.Wine{
				{ID: 1, Name: "Château Léoville"},
				{ID: 2, Name: "Other"},
			},
			wantOrder: []int64{1, 2},
		},
		{
			name:  "image bonus breaks otherwise equal rows",
			query: Query{Name: "Barolo"},
			wines: []catalog.Wine{
				{ID: 9, Name: "Barolo"},
				{ID: 3, Name: "Barolo", ImageURL: "https://img/3.jpg"},
			},
			wantOrder: []int64{3, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatcher(t, &fakeStore{wines: tt.wines}, DefaultConfig())
			rows, err := m.Search(context.Background(), tt.query, 10)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(rows) != len(tt.wantOrder) {
				t.Fatalf("Search() returned %d rows, want %d", len(rows), len(tt.wantOrder))
			}
			for i, want := range tt.wantOrder {
				if rows[i].ID != want {
					t.Errorf("rows[%d].ID = %d, want %d", i, rows[i].ID, want)
				}
			}
		})
	}
}

func TestSearchDeduplicates(t *testing.T) {
	store := &fakeStore{wines: []catalog.Wine{
		{ID: 7, Name: "Barolo"},
		{ID: 7, Name: "Barolo"},
		{ID: 8, Name: "Barolo Riserva"},
	}}
	m := newTestMatcher(t, store, DefaultConfig())

	rows, err := m.Search(context.Background(), Query{Name: "Barolo"}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Search() returned %d rows, want 2 after dedupe", len(rows))
	}
}

func TestBestMatch(t *testing.T) {
	t.Run("returns top ranked row", func(t *testing.T) {
		store := &fakeStore{wines: []catalog.Wine{
			{ID: 1, Name: "Opus One", Vintage: intPtr(2015)},
			{ID: 2, Name: "Opus One", Vintage: intPtr(2018)},
		}}
		m := newTestMatcher(t, store, DefaultConfig())

		best, err := m.BestMatch(context.Background(), Query{Name: "Opus One", Vintage: "2018"})
		if err != nil {
			t.Fatalf("BestMatch() error = %v", err)
		}
		if best == nil {
			t.Fatal("BestMatch() = nil, want row")
		}
		if best.ID != 2 {
			t.Errorf("BestMatch().ID = %d, want 2", best.ID)
		}
	})

	t.Run("nil when nothing matches", func(t *testing.T) {
		m := newTestMatcher(t, &fakeStore{}, DefaultConfig())
		best, err := m.BestMatch(context.Background(), Query{Name: "Unknown Estate"})
		if err != nil {
			t.Fatalf("BestMatch() error = %v", err)
		}
		if best != nil {
			t.Errorf("BestMatch() = %+v, want nil", best)
		}
	})

	t.Run("empty fallback queries stay empty", func(t *testing.T) {
		store := &fakeStore{}
		m := newTestMatcher(t, store, DefaultConfig())
		best, err := m.BestMatch(context.Background(), Query{Vintage: "NV"})
		if err != nil {
			t.Fatalf("BestMatch() error = %v", err)
		}
		if best != nil {
			t.Errorf("BestMatch() = %+v, want nil", best)
		}
	})
}

func TestFromFreeText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantName    string
		wantWinery  string
		wantVintage string
	}{
		{"two tokens all name", "Opus One", "Opus One", "", ""},
		{"inline year extracted", "Opus One 2018 Mondavi", "Opus One", "2018 Mondavi", "2018"},
		{"long query splits", "Sassicaia Tenuta San Guido", "Sassicaia Tenuta", "San Guido", ""},
		{"empty input", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := FromFreeText(tt.input)
			if q.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", q.Name, tt.wantName)
			}
			if q.Winery != tt.wantWinery {
				t.Errorf("Winery = %q, want %q", q.Winery, tt.wantWinery)
			}
			if q.Vintage != tt.wantVintage {
				t.Errorf("Vintage = %q, want %q", q.Vintage, tt.wantVintage)
			}
		})
	}
}

func TestWeightsByName(t *testing.T) {
	if _, err := WeightsByName("label"); err != nil {
		t.Errorf("WeightsByName(label) error = %v", err)
	}
	if _, err := WeightsByName("search"); err != nil {
		t.Errorf("WeightsByName(search) error = %v", err)
	}
	if _, err := WeightsByName("bogus"); err == nil {
		t.Error("WeightsByName(bogus) expected error")
	}
	w, err := WeightsByName("")
	if err != nil {
		t.Fatalf("WeightsByName(\"\") error = %v", err)
	}
	if w != LabelWeights() {
		t.Error("empty profile name should resolve to label weights")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default ok", func(*Config) {}, false},
		{"zero recall limit", func(c *Config) { c.RecallLimit = 0 }, true},
		{"zero default limit", func(c *Config) { c.DefaultLimit = 0 }, true},
		{"max below default", func(c *Config) { c.MaxLimit = 5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
