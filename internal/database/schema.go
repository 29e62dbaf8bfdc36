// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// initialize creates tables and indexes.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	if err := db.createIndexes(); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// createTables creates the core tables. All columns are defined in the
// initial CREATE TABLE statements; the offline batch jobs share this
// schema and never alter it at runtime.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS wines_id_seq`,
		`CREATE TABLE IF NOT EXISTS wines (
			id BIGINT PRIMARY KEY DEFAULT nextval('wines_id_seq'),
			name VARCHAR NOT NULL,
			winery VARCHAR,
			region VARCHAR,
			country VARCHAR,
			grapes VARCHAR,
			type VARCHAR,
			vintage INTEGER,
			price DOUBLE,
			rating DOUBLE,
			investability_score DOUBLE,
			style_vector VARCHAR,
			image_url VARCHAR,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id BIGINT PRIMARY KEY,
			avg_price_min DOUBLE,
			avg_price_max DOUBLE,
			style_vector VARCHAR,
			varietal_top3 VARCHAR,
			region_top3 VARCHAR,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS cf_user_factors (
			user_id BIGINT PRIMARY KEY,
			factors VARCHAR NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS cf_wine_factors (
			wine_id BIGINT PRIMARY KEY,
			factors VARCHAR NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_recommendations (
			user_id BIGINT NOT NULL,
			wine_id BIGINT NOT NULL,
			score DOUBLE NOT NULL,
			reason VARCHAR,
			source VARCHAR NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, wine_id, source)
		)`,
	}

	for _, q := range queries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// createIndexes covers the hot query paths: recent priced candidates,
// matcher recall and curated cache lookups.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_wines_created ON wines(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_wines_vintage ON wines(vintage)`,
		`CREATE INDEX IF NOT EXISTS idx_recos_user_source ON user_recommendations(user_id, source, expires_at)`,
	}

	for _, q := range queries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("exec index statement: %w", err)
		}
	}
	return nil
}
