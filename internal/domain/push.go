package domain

import (
	"encoding/json"
	"time"
)

// PushSubscription holds the opaque browser push descriptor for a user.
// At most one live descriptor exists per user; each save overwrites the
// previous one.
type PushSubscription struct {
	UserID       string          `json:"user_id"`
	Subscription json.RawMessage `json:"subscription"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
