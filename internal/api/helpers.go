// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/cellarius/cellarius/internal/logging"
	"github.com/cellarius/cellarius/internal/models"
)

// respondJSON writes a success envelope with an ETag for client caching.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}, queryTime time.Duration) {
	response := models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	}

	body, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal API response")
		http.Error(w, `{"status":"error","error":{"code":"INTERNAL_ERROR","message":"Response encoding failed"}}`,
			http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "private, max-age=30")
	w.Header().Set("Vary", "Accept-Encoding")
	w.Header().Set("ETag", generateETag(body))
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		logging.Debug().Err(err).Msg("Failed to write response body")
	}
}

// respondError writes an error envelope. details may be nil.
func respondError(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	response := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	}

	body, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal error response")
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		logging.Debug().Err(err).Msg("Failed to write error response body")
	}
}

// generateETag produces a weak ETag from the response body using FNV-1a.
func generateETag(body []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(body)
	return fmt.Sprintf(`W/"%x"`, h.Sum64())
}

// queryInt parses an integer query parameter, returning def when the
// parameter is absent and an error when it is present but malformed.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be an integer", name)
	}
	return v, nil
}

// sanitizeLogValue strips control characters from user-supplied values
// before they reach structured log fields.
func sanitizeLogValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
