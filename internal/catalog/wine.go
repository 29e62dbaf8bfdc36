// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package catalog

import (
	"time"
)

// Wine is a catalog row. It is immutable for the duration of a request;
// the catalog store owns the data and this package only reads it.
//
// Optional numeric fields are pointers so that "absent" is distinguishable
// from zero: a wine with no rating and a wine rated 0 are different things.
type Wine struct {
	// ID is the catalog row identifier. Higher IDs are more recently added.
	ID int64 `json:"id"`

	// Name is the label name of the wine.
	Name string `json:"name"`

	// Winery is the producer.
	Winery string `json:"winery"`

	// Region is the production region (e.g. "Napa Valley").
	Region string `json:"region"`

	// Country is the production country.
	Country string `json:"country"`

	// Grapes is free text listing varietals, separated by commas,
	// ampersands, slashes or semicolons ("Cabernet Sauvignon, Merlot").
	Grapes string `json:"grapes"`

	// Type is the broad category (red, white, rosé, sparkling...).
	Type string `json:"type"`

	// Vintage is the harvest year. Nil for non-vintage wines and for
	// labels where the year could not be established.
	Vintage *int `json:"vintage,omitempty"`

	// Price is the catalog price. Nil when unknown.
	Price *float64 `json:"price,omitempty"`

	// Rating is the critic rating, either on a 0-5 or a 0-100 scale
	// depending on the source feed. Nil when unrated.
	Rating *float64 `json:"rating,omitempty"`

	// Investability is a 0-100 score for collectability produced by an
	// upstream enrichment job. Nil when not computed.
	Investability *float64 `json:"investability_score,omitempty"`

	// StyleVector is a fixed-length tasting-profile embedding produced by
	// an upstream enrichment job. Nil when the wine has not been embedded.
	StyleVector []float64 `json:"style_vector,omitempty"`

	// ImageURL is the bottle shot, empty when missing.
	ImageURL string `json:"image_url,omitempty"`

	// CreatedAt is when the row entered the catalog.
	CreatedAt time.Time `json:"created_at"`
}

// PriceValue returns the price or 0 when absent.
func (w *Wine) PriceValue() float64 {
	if w.Price == nil {
		return 0
	}
	return *w.Price
}

// RatingValue returns the rating or 0 when absent.
func (w *Wine) RatingValue() float64 {
	if w.Rating == nil {
		return 0
	}
	return *w.Rating
}

// InvestabilityValue returns the investability score or 0 when absent.
func (w *Wine) InvestabilityValue() float64 {
	if w.Investability == nil {
		return 0
	}
	return *w.Investability
}

// Varietals returns the normalized varietal tokens of the grapes field.
func (w *Wine) Varietals() []string {
	return Varietals(w.Grapes)
}

// Dedupe removes duplicate IDs from a slice of wines, keeping the first
// occurrence and preserving order.
func Dedupe(wines []Wine) []Wine {
	seen := make(map[int64]struct{}, len(wines))
	out := wines[:0:0]
	for i := range wines {
		if _, ok := seen[wines[i].ID]; ok {
			continue
		}
		seen[wines[i].ID] = struct{}{}
		out = append(out, wines[i])
	}
	return out
}
