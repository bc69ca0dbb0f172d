package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/spura-app/spura/internal/domain"
	"github.com/spura-app/spura/internal/identity"
)

// AppendEntryRequest adds one diary turn for the authenticated user.
type AppendEntryRequest struct {
	Role    domain.Role `json:"role"`
	Content string      `json:"content"`
}

// AppendMoodRequest records one mood sample.
type AppendMoodRequest struct {
	Mood int `json:"mood"`
}

// HandleListEntries handles GET /api/entries?since=RFC3339.
func (h *Handler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	since, ok := parseSince(w, r)
	if !ok {
		return
	}

	entries, err := h.repo.ListEntries(r.Context(), userID, since)
	if err != nil {
		slog.Error("list entries failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}
	if entries == nil {
		entries = []*domain.JournalEntry{}
	}

	JSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// HandleAppendEntry handles POST /api/entries.
func (h *Handler) HandleAppendEntry(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var req AppendEntryRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Role.Valid() {
		Error(w, http.StatusBadRequest, "role must be user or assistant")
		return
	}
	if req.Content == "" {
		Error(w, http.StatusBadRequest, "content is required")
		return
	}

	entry, err := h.repo.AppendEntry(r.Context(), userID, req.Role, req.Content)
	if err != nil {
		slog.Error("append entry failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}

	JSON(w, http.StatusCreated, map[string]interface{}{"entry": entry})
}

// HandleDeleteEntries handles DELETE /api/entries — the "start new
// conversation" action. Idempotent.
func (h *Handler) HandleDeleteEntries(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	deleted, err := h.repo.DeleteEntries(r.Context(), userID)
	if err != nil {
		slog.Error("delete entries failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}

	JSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// HandleListMoods handles GET /api/moods?since=RFC3339.
func (h *Handler) HandleListMoods(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	since, ok := parseSince(w, r)
	if !ok {
		return
	}

	moods, err := h.repo.ListMoods(r.Context(), userID, since)
	if err != nil {
		slog.Error("list moods failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}
	if moods == nil {
		moods = []*domain.MoodSample{}
	}

	JSON(w, http.StatusOK, map[string]interface{}{"moods": moods})
}

// HandleAppendMood handles POST /api/moods.
func (h *Handler) HandleAppendMood(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var req AppendMoodRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := domain.ValidateMood(req.Mood); err != nil {
		Error(w, http.StatusBadRequest, "mood must be between 1 and 5")
		return
	}

	sample, err := h.repo.AppendMood(r.Context(), userID, req.Mood)
	if err != nil {
		slog.Error("append mood failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}

	JSON(w, http.StatusCreated, map[string]interface{}{"mood": sample})
}

// HandleTopics handles GET /api/topics — the static guided-session topics.
func (h *Handler) HandleTopics(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{"topics": domain.SessionTopics()})
}

// parseSince reads the optional since query parameter. A zero time means no
// lower bound.
func parseSince(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("since")
	if raw == "" {
		return time.Time{}, true
	}
	since, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		Error(w, http.StatusBadRequest, "since must be RFC3339")
		return time.Time{}, false
	}
	return since, true
}
