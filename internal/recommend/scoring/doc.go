// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

// Package scoring implements the pure scoring functions behind the
// recommendation engine: collaborative-filtering affinity, style-vector
// similarity and the additive taste-fit bonuses for personalized scoring,
// plus the popularity blend used for cold-start users.
//
// Everything here is deterministic and side-effect free. Scores are
// rounded to three decimals at the very end so downstream ordering and
// JSON payloads are stable.
package scoring
