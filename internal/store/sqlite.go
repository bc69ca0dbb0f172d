package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spura-app/spura/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_user_created ON entries(user_id, created_at);

	CREATE TABLE IF NOT EXISTS moods (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mood INTEGER NOT NULL CHECK (mood BETWEEN 1 AND 5),
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_moods_user_created ON moods(user_id, created_at);

	CREATE TABLE IF NOT EXISTS push_subscriptions (
		user_id TEXT PRIMARY KEY,
		subscription TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// AppendEntry inserts one immutable journal turn.
func (s *SQLiteStore) AppendEntry(ctx context.Context, userID string, role domain.Role, content string) (*domain.JournalEntry, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid entry role %q", role)
	}
	if content == "" {
		return nil, fmt.Errorf("entry content cannot be empty")
	}

	entry := &domain.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}

	query := `INSERT INTO entries (id, user_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, string(entry.Role), entry.Content, entry.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns a user's entries ascending by creation time. The rowid
// tiebreak keeps same-second appends in insertion order.
func (s *SQLiteStore) ListEntries(ctx context.Context, userID string, since time.Time) ([]*domain.JournalEntry, error) {
	query := `
		SELECT id, user_id, role, content, created_at
		FROM entries WHERE user_id = ?`
	args := []interface{}{userID}

	if !since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, since.Unix())
	}
	query += ` ORDER BY created_at ASC, rowid ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close entries rows", "error", closeErr)
		}
	}()

	var entries []*domain.JournalEntry
	for rows.Next() {
		var entry domain.JournalEntry
		var role string
		var createdAt int64

		if err := rows.Scan(&entry.ID, &entry.UserID, &role, &entry.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry row: %w", err)
		}
		entry.Role = domain.Role(role)
		entry.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// DeleteEntries removes all entries for a user. Retries on SQLITE_BUSY with
// exponential backoff, matching the delete path's concurrency behavior.
func (s *SQLiteStore) DeleteEntries(ctx context.Context, userID string) (int64, error) {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE user_id = ?`, userID)
		if err == nil {
			return result.RowsAffected()
		}
		lastErr = err

		if isSQLiteBusy(err) && i < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<i)
			slog.Debug("DeleteEntries hit SQLITE_BUSY, retrying",
				"user_id", userID,
				"attempt", i+1,
				"delay", delay)
			time.Sleep(delay)
			continue
		}
		break
	}

	return 0, fmt.Errorf("delete entries for %s: %w", userID, lastErr)
}

// CountUserEntries counts a user's user-authored entries.
func (s *SQLiteStore) CountUserEntries(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM entries WHERE user_id = ? AND role = 'user'`
	var count int
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count user entries: %w", err)
	}
	return count, nil
}

// AppendMood records one mood sample.
func (s *SQLiteStore) AppendMood(ctx context.Context, userID string, mood int) (*domain.MoodSample, error) {
	if err := domain.ValidateMood(mood); err != nil {
		return nil, err
	}

	sample := &domain.MoodSample{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mood:      mood,
		CreatedAt: time.Now(),
	}

	query := `INSERT INTO moods (id, user_id, mood, created_at) VALUES (?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		sample.ID, sample.UserID, sample.Mood, sample.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert mood: %w", err)
	}
	return sample, nil
}

// ListMoods returns a user's mood samples ascending by creation time.
func (s *SQLiteStore) ListMoods(ctx context.Context, userID string, since time.Time) ([]*domain.MoodSample, error) {
	query := `
		SELECT id, user_id, mood, created_at
		FROM moods WHERE user_id = ?`
	args := []interface{}{userID}

	if !since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, since.Unix())
	}
	query += ` ORDER BY created_at ASC, rowid ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query moods: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close moods rows", "error", closeErr)
		}
	}()

	var samples []*domain.MoodSample
	for rows.Next() {
		var sample domain.MoodSample
		var createdAt int64

		if err := rows.Scan(&sample.ID, &sample.UserID, &sample.Mood, &createdAt); err != nil {
			return nil, fmt.Errorf("scan mood row: %w", err)
		}
		sample.CreatedAt = time.Unix(createdAt, 0)
		samples = append(samples, &sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moods: %w", err)
	}
	return samples, nil
}

// UpsertPushSubscription saves the user's push descriptor, replacing any
// previous one.
func (s *SQLiteStore) UpsertPushSubscription(ctx context.Context, userID string, subscription json.RawMessage) error {
	if len(subscription) == 0 || !json.Valid(subscription) {
		return fmt.Errorf("subscription must be valid JSON")
	}

	query := `
	INSERT INTO push_subscriptions (user_id, subscription, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		subscription = excluded.subscription,
		updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query, userID, string(subscription), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upsert push subscription: %w", err)
	}
	return nil
}

// GetPushSubscription returns the user's live push descriptor, or nil.
func (s *SQLiteStore) GetPushSubscription(ctx context.Context, userID string) (*domain.PushSubscription, error) {
	query := `SELECT user_id, subscription, updated_at FROM push_subscriptions WHERE user_id = ?`
	row := s.db.QueryRowContext(ctx, query, userID)

	var sub domain.PushSubscription
	var raw string
	var updatedAt int64

	err := row.Scan(&sub.UserID, &raw, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan push subscription: %w", err)
	}

	sub.Subscription = json.RawMessage(raw)
	sub.UpdatedAt = time.Unix(updatedAt, 0)
	return &sub, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// isSQLiteBusy reports whether the error is a SQLite concurrency error that
// warrants a retry.
func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "SQLITE_BUSY") ||
		strings.Contains(err.Error(), "database is locked")
}
