// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package catalog

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercases", input: "Opus One", want: "opus one"},
		{name: "strips accents", input: "Château Margaux", want: "chateau margaux"},
		{name: "collapses punctuation", input: "Dom. Pérignon -- Brut!", want: "dom perignon brut"},
		{name: "collapses whitespace", input: "  la   tâche  ", want: "la tache"},
		{name: "keeps digits", input: "Cuvée No. 7", want: "cuvee no 7"},
		{name: "german umlaut", input: "Müller-Thurgau", want: "muller thurgau"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Château Margaux", "opus one", "  Dom.  Pérignon ", "Müller-Thurgau 1990"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeVintage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{name: "bare year", input: "2018", want: intPtr(2018)},
		{name: "padded year", input: " 1999 ", want: intPtr(1999)},
		{name: "empty", input: "", want: nil},
		{name: "NV is unknown", input: "NV", want: nil},
		{name: "N.V. is unknown", input: "N.V.", want: nil},
		{name: "lowercase nv", input: "n.v.", want: nil},
		{name: "two digits", input: "99", want: nil},
		{name: "year with text", input: "2018 vintage", want: nil},
		{name: "five digits", input: "20188", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVintage(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("NormalizeVintage(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("NormalizeVintage(%q) = %d, want %d", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestDetectVintage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{name: "inline year", input: "opus one 2018", want: intPtr(2018)},
		{name: "leading year", input: "2015 barolo riserva", want: intPtr(2015)},
		{name: "no year", input: "barolo riserva", want: nil},
		{name: "out of range century", input: "wine 1850", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectVintage(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("DetectVintage(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("DetectVintage(%q) = %d, want %d", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestVarietals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "Pinot Noir", want: []string{"pinot noir"}},
		{name: "comma separated", input: "Cabernet Sauvignon, Merlot", want: []string{"cabernet sauvignon", "merlot"}},
		{name: "mixed delimiters", input: "Grenache/Syrah & Mourvèdre; Cinsault", want: []string{"grenache", "syrah", "mourvèdre", "cinsault"}},
		{name: "collapses spacing", input: "pinot   noir", want: []string{"pinot noir"}},
		{name: "only delimiters", input: ",,;", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Varietals(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Varietals(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Varietals(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGrapeTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "drops blend", input: "Red Blend", want: []string{"red"}},
		{name: "dedupes", input: "syrah, syrah", want: []string{"syrah"}},
		{name: "splits words", input: "Cabernet Sauvignon", want: []string{"cabernet", "sauvignon"}},
		{name: "only blend", input: "blend", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrapeTokens(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("GrapeTokens(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("GrapeTokens(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{name: "both empty", a: nil, b: nil, want: 0},
		{name: "one empty", a: []string{"syrah"}, b: nil, want: 0},
		{name: "identical", a: []string{"syrah", "grenache"}, b: []string{"syrah", "grenache"}, want: 1.0},
		{name: "disjoint", a: []string{"syrah"}, b: []string{"riesling"}, want: 0},
		{name: "half overlap", a: []string{"syrah", "grenache"}, b: []string{"syrah", "mourvedre"}, want: 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	wines := []Wine{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 1, Name: "a dup"}, {ID: 3, Name: "c"}}
	got := Dedupe(wines)
	if len(got) != 3 {
		t.Fatalf("Dedupe() returned %d wines, want 3", len(got))
	}
	if got[0].Name != "a" || got[1].Name != "b" || got[2].Name != "c" {
		t.Errorf("Dedupe() kept wrong rows or reordered: %v", got)
	}
}

func intPtr(v int) *int { return &v }
