// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/cellarius/cellarius/internal/catalog"
	"github.com/cellarius/cellarius/internal/logging"
	"github.com/cellarius/cellarius/internal/match"
	"github.com/cellarius/cellarius/internal/metrics"
)

const wineColumns = `id, name, winery, region, country, grapes, type, vintage,
	price, rating, investability_score, style_vector, image_url, created_at`

// scanWine reads one wine row. A malformed style_vector is logged and
// dropped rather than failing the whole result set.
func scanWine(rows *sql.Rows) (catalog.Wine, error) {
	var (
		w         catalog.Wine
		winery    sql.NullString
		region    sql.NullString
		country   sql.NullString
		grapes    sql.NullString
		wineType  sql.NullString
		vintage   sql.NullInt32
		price     sql.NullFloat64
		rating    sql.NullFloat64
		invest    sql.NullFloat64
		styleJSON sql.NullString
		imageURL  sql.NullString
	)

	err := rows.Scan(&w.ID, &w.Name, &winery, &region, &country, &grapes,
		&wineType, &vintage, &price, &rating, &invest, &styleJSON, &imageURL,
		&w.CreatedAt)
	if err != nil {
		return catalog.Wine{}, fmt.Errorf("scan wine row: %w", err)
	}

	w.Winery = winery.String
	w.Region = region.String
	w.Country = country.String
	w.Grapes = grapes.String
	w.Type = wineType.String
	w.ImageURL = imageURL.String
	if vintage.Valid {
		v := int(vintage.Int32)
		w.Vintage = &v
	}
	if price.Valid {
		w.Price = &price.Float64
	}
	if rating.Valid {
		w.Rating = &rating.Float64
	}
	if invest.Valid {
		w.Investability = &invest.Float64
	}
	if styleJSON.Valid && styleJSON.String != "" {
		if err := json.Unmarshal([]byte(styleJSON.String), &w.StyleVector); err != nil {
			logging.Warn().Err(err).Int64("wine_id", w.ID).Msg("Malformed style vector, ignoring")
			w.StyleVector = nil
		}
	}
	return w, nil
}

// collectWines drains a wine result set.
func collectWines(rows *sql.Rows) ([]catalog.Wine, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			logging.Debug().Err(err).Msg("Close rows failed")
		}
	}()

	var wines []catalog.Wine
	for rows.Next() {
		w, err := scanWine(rows)
		if err != nil {
			return nil, err
		}
		wines = append(wines, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wine rows: %w", err)
	}
	return wines, nil
}

// RecentPriced returns the most recently added wines with a non-null
// price, newest first. This is the live-scoring candidate pool.
func (db *DB) RecentPriced(ctx context.Context, limit int) ([]catalog.Wine, error) {
	query := fmt.Sprintf(`SELECT %s FROM wines
		WHERE price IS NOT NULL
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, wineColumns)

	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		metrics.RecordDBError("recent_priced")
		return nil, fmt.Errorf("query recent priced wines: %w", err)
	}
	return collectWines(rows)
}

// WinesByIDs batch-loads wines by id. Missing ids are silently absent
// from the result.
func (db *DB) WinesByIDs(ctx context.Context, ids []int64) ([]catalog.Wine, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`SELECT %s FROM wines WHERE id IN (%s)`, wineColumns, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBError("wines_by_ids")
		return nil, fmt.Errorf("query wines by ids: %w", err)
	}
	return collectWines(rows)
}

// MatchCandidates pulls the matcher's recall pool: any wine matching any
// non-empty filter field. Comparisons strip accents and case so the SQL
// net catches what the in-process ranking normalizes to.
func (db *DB) MatchCandidates(ctx context.Context, f match.RecallFilter, limit int) ([]catalog.Wine, error) {
	var conds []string
	var args []any

	addLike := func(column, value string) {
		if value == "" {
			return
		}
		conds = append(conds, fmt.Sprintf("strip_accents(lower(%s)) LIKE ?", column))
		args = append(args, "%"+value+"%")
	}
	addLike("name", f.Name)
	addLike("winery", f.Winery)
	addLike("region", f.Region)
	addLike("grapes", f.Grapes)
	if f.Vintage != nil {
		conds = append(conds, "vintage = ?")
		args = append(args, *f.Vintage)
	}

	if len(conds) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM wines WHERE %s ORDER BY id DESC LIMIT ?`,
		wineColumns, strings.Join(conds, " OR "))
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBError("match_candidates")
		return nil, fmt.Errorf("query match candidates: %w", err)
	}
	return collectWines(rows)
}

// ItemFactors batch-loads CF item factor vectors for the given wine ids.
// Wines without factors are absent from the map.
func (db *DB) ItemFactors(ctx context.Context, ids []int64) (map[int64][]float64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`SELECT wine_id, factors FROM cf_wine_factors WHERE wine_id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBError("item_factors")
		return nil, fmt.Errorf("query item factors: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.Debug().Err(err).Msg("Close rows failed")
		}
	}()

	factors := make(map[int64][]float64)
	for rows.Next() {
		var wineID int64
		var raw string
		if err := rows.Scan(&wineID, &raw); err != nil {
			return nil, fmt.Errorf("scan item factor row: %w", err)
		}
		var vec []float64
		if err := json.Unmarshal([]byte(raw), &vec); err != nil {
			logging.Warn().Err(err).Int64("wine_id", wineID).Msg("Malformed item factors, ignoring")
			continue
		}
		factors[wineID] = vec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item factor rows: %w", err)
	}
	return factors, nil
}

// InsertWine adds a catalog wine and returns its id. Used by the import
// tooling and tests; the serving path never writes wines.
func (db *DB) InsertWine(ctx context.Context, w *catalog.Wine) (int64, error) {
	var styleJSON any
	if len(w.StyleVector) > 0 {
		raw, err := json.Marshal(w.StyleVector)
		if err != nil {
			return 0, fmt.Errorf("marshal style vector: %w", err)
		}
		styleJSON = string(raw)
	}

	var vintage any
	if w.Vintage != nil {
		vintage = *w.Vintage
	}

	row := db.conn.QueryRowContext(ctx, `INSERT INTO wines
		(name, winery, region, country, grapes, type, vintage, price, rating,
		 investability_score, style_vector, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		w.Name, nullIfEmpty(w.Winery), nullIfEmpty(w.Region), nullIfEmpty(w.Country),
		nullIfEmpty(w.Grapes), nullIfEmpty(w.Type), vintage, w.Price, w.Rating,
		w.Investability, styleJSON, nullIfEmpty(w.ImageURL))

	var id int64
	if err := row.Scan(&id); err != nil {
		metrics.RecordDBError("insert_wine")
		return 0, fmt.Errorf("insert wine: %w", err)
	}
	return id, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
