package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spura-app/spura/internal/domain"
	"github.com/spura-app/spura/internal/identity"
	"github.com/spura-app/spura/internal/journal"
)

// ChatRequest carries the full conversation so far, terminating in the
// user's newest message.
type ChatRequest struct {
	Entries []domain.Turn `json:"entries"`
}

// SessionRequest carries one guided-session exchange. Topic, when set,
// resolves the preamble server-side; otherwise SystemPrompt is used as-is.
type SessionRequest struct {
	Messages     []domain.Turn `json:"messages"`
	Topic        string        `json:"topic,omitempty"`
	SystemPrompt string        `json:"systemPrompt,omitempty"`
}

// WeekRequest carries the trailing week's entries.
type WeekRequest struct {
	Entries []domain.Turn `json:"entries"`
}

// MirrorEntry is one accumulated entry submitted for the personality mirror.
type MirrorEntry struct {
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// MirrorRequest carries all accumulated user entries.
type MirrorRequest struct {
	Entries []MirrorEntry `json:"entries"`
}

// HandleChat handles POST /api/chat.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if !h.allowCompletion(w, userID) {
		return
	}

	var req ChatRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.journal.Chat(r.Context(), userID, req.Entries)
	if err != nil {
		if errors.Is(err, journal.ErrNoTurns) {
			Error(w, http.StatusBadRequest, "entries are required")
			return
		}
		slog.Error("chat completion failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"response": reply})
}

// HandleDailyQuestion handles GET /api/chat/frage.
func (h *Handler) HandleDailyQuestion(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"frage": h.journal.DailyQuestion(time.Now())})
}

// HandleSession handles POST /api/session.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if !h.allowCompletion(w, userID) {
		return
	}

	var req SessionRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prompt := req.SystemPrompt
	if req.Topic != "" {
		topic, ok := domain.TopicByID(req.Topic)
		if !ok {
			Error(w, http.StatusBadRequest, "unknown session topic")
			return
		}
		prompt = topic.Prompt
	}

	reply, err := h.journal.GuidedSession(r.Context(), userID, prompt, req.Messages)
	if err != nil {
		if errors.Is(err, journal.ErrEmptyTopicText) {
			Error(w, http.StatusBadRequest, "systemPrompt or topic is required")
			return
		}
		slog.Error("session completion failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"response": reply})
}

// HandleWeek handles POST /api/woche.
func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if !h.allowCompletion(w, userID) {
		return
	}

	var req WeekRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.journal.WeeklyReview(r.Context(), userID, req.Entries)
	if err != nil {
		slog.Error("weekly review failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"response": reply})
}

// HandleMirror handles POST /api/spiegel. The five narrative fields are
// returned at the top level of the response body.
func (h *Handler) HandleMirror(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if !h.allowCompletion(w, userID) {
		return
	}

	var req MirrorRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	texts := make([]string, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.Content != "" {
			texts = append(texts, e.Content)
		}
	}

	mirror, err := h.journal.Mirror(r.Context(), userID, texts)
	if err != nil {
		if errors.Is(err, journal.ErrTooFewEntries) {
			Error(w, http.StatusBadRequest, "not enough entries")
			return
		}
		slog.Error("mirror failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}

	JSON(w, http.StatusOK, mirror)
}

// allowCompletion applies the per-user rate limit shared by all endpoints
// that reach the completion provider.
func (h *Handler) allowCompletion(w http.ResponseWriter, userID string) bool {
	if h.rateLimiter != nil && !h.rateLimiter.Allow(userID) {
		Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return false
	}
	return true
}
