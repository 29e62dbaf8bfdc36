// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package database

import (
	"context"
	"fmt"

	"github.com/cellarius/cellarius/internal/logging"
	"github.com/cellarius/cellarius/internal/match"
	"github.com/cellarius/cellarius/internal/metrics"
	"github.com/cellarius/cellarius/internal/recommend"
)

// curatedSource is the only source the serving path reads. Other sources
// (e.g. experimental batches) stay invisible until promoted.
const curatedSource = "rerank"

// CuratedForUser returns unexpired curated picks for a user, best first.
// Expiry is enforced in SQL so a stale cache can never be served.
func (db *DB) CuratedForUser(ctx context.Context, userID int64, limit int) ([]recommend.CuratedRecommendation, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT user_id, wine_id, score,
		COALESCE(reason, ''), source, expires_at
		FROM user_recommendations
		WHERE user_id = ? AND source = ? AND expires_at > CURRENT_TIMESTAMP
		ORDER BY score DESC
		LIMIT ?`, userID, curatedSource, limit)
	if err != nil {
		metrics.RecordDBError("curated_for_user")
		return nil, fmt.Errorf("query curated recommendations: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.Debug().Err(err).Msg("Close rows failed")
		}
	}()

	var recs []recommend.CuratedRecommendation
	for rows.Next() {
		var r recommend.CuratedRecommendation
		if err := rows.Scan(&r.UserID, &r.WineID, &r.Score, &r.Reason, &r.Source, &r.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan curated row: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate curated rows: %w", err)
	}
	return recs, nil
}

// UpsertCurated writes one curated pick. Owned by the offline LLM-rerank
// batch; exposed here for that job and for tests.
func (db *DB) UpsertCurated(ctx context.Context, r *recommend.CuratedRecommendation) error {
	_, err := db.conn.ExecContext(ctx, `INSERT OR REPLACE INTO user_recommendations
		(user_id, wine_id, score, reason, source, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.UserID, r.WineID, r.Score, r.Reason, r.Source, r.ExpiresAt)
	if err != nil {
		metrics.RecordDBError("upsert_curated")
		return fmt.Errorf("upsert curated recommendation: %w", err)
	}
	return nil
}

// Interface conformance for the engine and matcher.
var (
	_ recommend.DataProvider = (*DB)(nil)
	_ match.CandidateStore   = (*DB)(nil)
)
