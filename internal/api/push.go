package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/spura-app/spura/internal/identity"
)

// PushRequest saves the browser's push descriptor. The owner comes from the
// bearer token, never from the body.
type PushRequest struct {
	Subscription json.RawMessage `json:"subscription"`
}

// HandleSavePush handles POST /api/push.
func (h *Handler) HandleSavePush(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	var req PushRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Subscription) == 0 {
		Error(w, http.StatusBadRequest, "subscription is required")
		return
	}

	if err := h.repo.UpsertPushSubscription(r.Context(), userID, req.Subscription); err != nil {
		slog.Error("save push subscription failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, genericFailure)
		return
	}

	JSON(w, http.StatusOK, map[string]bool{"success": true})
}
