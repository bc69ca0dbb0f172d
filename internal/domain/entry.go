// Package domain contains core domain types for the Spura application.
package domain

import (
	"fmt"
	"time"
)

// Role tags a conversation turn as user- or assistant-authored.
type Role string

const (
	// RoleUser marks a turn written by the journaling user.
	RoleUser Role = "user"
	// RoleAssistant marks a turn generated by the completion provider.
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is one message in a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Validate checks that the turn carries a known role and non-empty content.
func (t Turn) Validate() error {
	if !t.Role.Valid() {
		return fmt.Errorf("invalid turn role %q", t.Role)
	}
	if t.Content == "" {
		return fmt.Errorf("turn content cannot be empty")
	}
	return nil
}

// JournalEntry is one persisted diary turn. Entries are append-only and
// immutable once written; the only mutation is the bulk delete that starts
// a fresh conversation.
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Turn converts the stored entry back into a conversation turn.
func (e *JournalEntry) Turn() Turn {
	return Turn{Role: e.Role, Content: e.Content}
}

// UserTurns filters a turn list down to user-authored turns.
func UserTurns(turns []Turn) []Turn {
	var out []Turn
	for _, t := range turns {
		if t.Role == RoleUser {
			out = append(out, t)
		}
	}
	return out
}
