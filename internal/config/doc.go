// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

// Package config loads layered configuration with Koanf v2: built-in
// defaults, then an optional YAML file, then environment variables.
// Precedence is ENV > file > defaults.
package config
