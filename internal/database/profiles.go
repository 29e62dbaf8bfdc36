// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/cellarius/cellarius/internal/logging"
	"github.com/cellarius/cellarius/internal/metrics"
	"github.com/cellarius/cellarius/internal/recommend"
)

// ProfileForUser returns the user's derived preference profile, or nil
// when no row exists yet (cold-start signal, not an error).
func (db *DB) ProfileForUser(ctx context.Context, userID int64) (*recommend.Profile, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT user_id, avg_price_min,
		avg_price_max, style_vector, varietal_top3, region_top3
		FROM user_profiles WHERE user_id = ?`, userID)

	var (
		p            recommend.Profile
		priceMin     sql.NullFloat64
		priceMax     sql.NullFloat64
		styleJSON    sql.NullString
		varietalJSON sql.NullString
		regionJSON   sql.NullString
	)
	err := row.Scan(&p.UserID, &priceMin, &priceMax, &styleJSON, &varietalJSON, &regionJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		metrics.RecordDBError("profile_for_user")
		return nil, fmt.Errorf("query user profile: %w", err)
	}

	if priceMin.Valid {
		p.PriceMin = &priceMin.Float64
	}
	if priceMax.Valid {
		p.PriceMax = &priceMax.Float64
	}
	decodeJSONField(styleJSON, &p.StyleVector, userID, "style_vector")
	decodeJSONField(varietalJSON, &p.TopVarietals, userID, "varietal_top3")
	decodeJSONField(regionJSON, &p.TopRegions, userID, "region_top3")

	return &p, nil
}

// decodeJSONField decodes an optional JSON column, logging and zeroing
// the target on malformed payloads.
func decodeJSONField[T any](col sql.NullString, target *T, userID int64, field string) {
	if !col.Valid || col.String == "" {
		return
	}
	if err := json.Unmarshal([]byte(col.String), target); err != nil {
		logging.Warn().Err(err).Int64("user_id", userID).Str("field", field).
			Msg("Malformed profile field, ignoring")
		var zero T
		*target = zero
	}
}

// UserFactors returns the user's CF factor vector, or nil when the
// training job has not produced one.
func (db *DB) UserFactors(ctx context.Context, userID int64) ([]float64, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT factors FROM cf_user_factors WHERE user_id = ?`, userID)

	var raw string
	err := row.Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		metrics.RecordDBError("user_factors")
		return nil, fmt.Errorf("query user factors: %w", err)
	}

	var vec []float64
	if err := json.Unmarshal([]byte(raw), &vec); err != nil {
		logging.Warn().Err(err).Int64("user_id", userID).Msg("Malformed user factors, ignoring")
		return nil, nil
	}
	return vec, nil
}

// UpsertProfile writes a derived profile row. Owned by the offline
// profile-derivation job; exposed here for that job and for tests.
func (db *DB) UpsertProfile(ctx context.Context, p *recommend.Profile) error {
	styleJSON, err := marshalOrNil(p.StyleVector, len(p.StyleVector) > 0)
	if err != nil {
		return err
	}
	varietalJSON, err := marshalOrNil(p.TopVarietals, len(p.TopVarietals) > 0)
	if err != nil {
		return err
	}
	regionJSON, err := marshalOrNil(p.TopRegions, len(p.TopRegions) > 0)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx, `INSERT OR REPLACE INTO user_profiles
		(user_id, avg_price_min, avg_price_max, style_vector, varietal_top3, region_top3, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		p.UserID, p.PriceMin, p.PriceMax, styleJSON, varietalJSON, regionJSON)
	if err != nil {
		metrics.RecordDBError("upsert_profile")
		return fmt.Errorf("upsert user profile: %w", err)
	}
	return nil
}

// UpsertUserFactors writes a CF user factor vector.
func (db *DB) UpsertUserFactors(ctx context.Context, userID int64, factors []float64) error {
	raw, err := json.Marshal(factors)
	if err != nil {
		return fmt.Errorf("marshal user factors: %w", err)
	}
	_, err = db.conn.ExecContext(ctx, `INSERT OR REPLACE INTO cf_user_factors
		(user_id, factors, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		userID, string(raw))
	if err != nil {
		metrics.RecordDBError("upsert_user_factors")
		return fmt.Errorf("upsert user factors: %w", err)
	}
	return nil
}

// UpsertWineFactors writes a CF item factor vector.
func (db *DB) UpsertWineFactors(ctx context.Context, wineID int64, factors []float64) error {
	raw, err := json.Marshal(factors)
	if err != nil {
		return fmt.Errorf("marshal wine factors: %w", err)
	}
	_, err = db.conn.ExecContext(ctx, `INSERT OR REPLACE INTO cf_wine_factors
		(wine_id, factors, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		wineID, string(raw))
	if err != nil {
		metrics.RecordDBError("upsert_wine_factors")
		return fmt.Errorf("upsert wine factors: %w", err)
	}
	return nil
}

func marshalOrNil[T any](v T, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal profile field: %w", err)
	}
	return string(raw), nil
}
