// Package api provides HTTP handlers for the Spura API.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spura-app/spura/internal/journal"
	"github.com/spura-app/spura/internal/store"
)

// genericFailure is the opaque user-facing message for any store or provider
// failure. Details stay in the server log.
const genericFailure = "Fehler"

const defaultMaxRequestBodySize = 1 << 20 // 1MB

// Handler serves all journal API endpoints.
type Handler struct {
	repo        store.Repository
	journal     *journal.Service
	rateLimiter *RateLimiter
	maxBodySize int64
}

// NewHandler creates a Handler. A nil rateLimiter disables throttling and a
// non-positive maxBodySize falls back to the 1MB default.
func NewHandler(repo store.Repository, svc *journal.Service, rateLimiter *RateLimiter, maxBodySize int64) *Handler {
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxRequestBodySize
	}
	return &Handler{
		repo:        repo,
		journal:     svc,
		rateLimiter: rateLimiter,
		maxBodySize: maxBodySize,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a bounded JSON request body into v.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
