// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spura-app/spura/internal/domain"
)

// Repository defines the interface for persisting journal data. Every
// operation is scoped by the owning user identity.
type Repository interface {
	// AppendEntry inserts one immutable journal turn and returns the stored row.
	AppendEntry(ctx context.Context, userID string, role domain.Role, content string) (*domain.JournalEntry, error)

	// ListEntries returns a user's entries ascending by creation time.
	// A zero since means no lower bound.
	ListEntries(ctx context.Context, userID string, since time.Time) ([]*domain.JournalEntry, error)

	// DeleteEntries removes all entries for a user and returns the number
	// of rows deleted. Used only by the "start new conversation" action.
	DeleteEntries(ctx context.Context, userID string) (int64, error)

	// CountUserEntries counts a user's user-authored entries. Backs the
	// personality-mirror minimum-entries gate.
	CountUserEntries(ctx context.Context, userID string) (int, error)

	// AppendMood records one mood sample. The 1-5 range is enforced here
	// as well as at the API layer.
	AppendMood(ctx context.Context, userID string, mood int) (*domain.MoodSample, error)

	// ListMoods returns a user's mood samples ascending by creation time.
	ListMoods(ctx context.Context, userID string, since time.Time) ([]*domain.MoodSample, error)

	// UpsertPushSubscription saves the user's push descriptor, replacing
	// any previous one.
	UpsertPushSubscription(ctx context.Context, userID string, subscription json.RawMessage) error

	// GetPushSubscription returns the user's live push descriptor, or nil.
	GetPushSubscription(ctx context.Context, userID string) (*domain.PushSubscription, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
