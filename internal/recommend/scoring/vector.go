// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package scoring

import "math"

// Dot returns the dot product over the shared prefix of a and b.
// Mismatched lengths are tolerated; the shorter vector decides.
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// Cosine returns the cosine similarity of a and b over their shared
// prefix. Either vector having zero norm yields 0, not NaN.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SquashAffinity maps a raw latent-factor dot product into [0, 1):
// tanh(dot/10), floored at zero so negative affinity contributes nothing
// rather than penalizing.
func SquashAffinity(dot float64) float64 {
	return math.Max(0, math.Tanh(dot/10))
}

// Round3 rounds to three decimal places, the precision all final scores
// are published at.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
