package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spura-app/spura/internal/domain"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "spura.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return repo
}

func TestAppendListRoundTrip(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	contents := []string{"erster", "zweiter", "dritter"}
	for i, c := range contents {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		if _, err := repo.AppendEntry(ctx, "user-1", role, c); err != nil {
			t.Fatalf("AppendEntry %d failed: %v", i, err)
		}
	}

	entries, err := repo.ListEntries(ctx, "user-1", time.Time{})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != len(contents) {
		t.Fatalf("expected %d entries, got %d", len(contents), len(entries))
	}
	for i, e := range entries {
		if e.Content != contents[i] {
			t.Errorf("entry %d out of order: got %q, want %q", i, e.Content, contents[i])
		}
		if e.UserID != "user-1" {
			t.Errorf("entry %d has wrong owner %q", i, e.UserID)
		}
		if e.ID == "" {
			t.Errorf("entry %d missing ID", i)
		}
	}
}

func TestListEntriesScopedByUser(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if _, err := repo.AppendEntry(ctx, "user-1", domain.RoleUser, "meins"); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}
	if _, err := repo.AppendEntry(ctx, "user-2", domain.RoleUser, "deins"); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	entries, err := repo.ListEntries(ctx, "user-1", time.Time{})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "meins" {
		t.Fatalf("expected only user-1 entries, got %+v", entries)
	}
}

func TestListEntriesSinceFilter(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if _, err := repo.AppendEntry(ctx, "user-1", domain.RoleUser, "alt"); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	future := time.Now().Add(time.Hour)
	entries, err := repo.ListEntries(ctx, "user-1", future)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries after future cutoff, got %d", len(entries))
	}
}

func TestDeleteEntriesIsIdempotent(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.AppendEntry(ctx, "user-1", domain.RoleUser, "eintrag"); err != nil {
			t.Fatalf("AppendEntry failed: %v", err)
		}
	}

	deleted, err := repo.DeleteEntries(ctx, "user-1")
	if err != nil {
		t.Fatalf("DeleteEntries failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", deleted)
	}

	deleted, err = repo.DeleteEntries(ctx, "user-1")
	if err != nil {
		t.Fatalf("second DeleteEntries failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted on repeat, got %d", deleted)
	}

	entries, err := repo.ListEntries(ctx, "user-1", time.Time{})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected zero entries after delete, got %d", len(entries))
	}
}

func TestCountUserEntriesIgnoresAssistantTurns(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if _, err := repo.AppendEntry(ctx, "user-1", domain.RoleUser, "von mir"); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}
	if _, err := repo.AppendEntry(ctx, "user-1", domain.RoleAssistant, "von der KI"); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	count, err := repo.CountUserEntries(ctx, "user-1")
	if err != nil {
		t.Fatalf("CountUserEntries failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 user entry, got %d", count)
	}
}

func TestAppendEntryRejectsInvalidInput(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if _, err := repo.AppendEntry(ctx, "user-1", domain.Role("system"), "x"); err == nil {
		t.Error("expected error for unknown role")
	}
	if _, err := repo.AppendEntry(ctx, "user-1", domain.RoleUser, ""); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestAppendMoodEnforcesRange(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	for _, mood := range []int{0, 6, -1} {
		if _, err := repo.AppendMood(ctx, "user-1", mood); err == nil {
			t.Errorf("expected error for mood %d", mood)
		}
	}

	sample, err := repo.AppendMood(ctx, "user-1", 4)
	if err != nil {
		t.Fatalf("AppendMood failed: %v", err)
	}
	if sample.Mood != 4 {
		t.Errorf("expected mood 4, got %d", sample.Mood)
	}

	moods, err := repo.ListMoods(ctx, "user-1", time.Time{})
	if err != nil {
		t.Fatalf("ListMoods failed: %v", err)
	}
	if len(moods) != 1 || moods[0].Mood != 4 {
		t.Fatalf("expected one stored sample with mood 4, got %+v", moods)
	}
}

func TestMultipleMoodSamplesPerDayAreRetained(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	for _, mood := range []int{2, 3, 5} {
		if _, err := repo.AppendMood(ctx, "user-1", mood); err != nil {
			t.Fatalf("AppendMood failed: %v", err)
		}
	}

	moods, err := repo.ListMoods(ctx, "user-1", time.Time{})
	if err != nil {
		t.Fatalf("ListMoods failed: %v", err)
	}
	if len(moods) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(moods))
	}
	for i, want := range []int{2, 3, 5} {
		if moods[i].Mood != want {
			t.Errorf("sample %d out of order: got %d, want %d", i, moods[i].Mood, want)
		}
	}
}

func TestUpsertPushSubscriptionKeepsOneRow(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	first := json.RawMessage(`{"endpoint":"https://push.example/a"}`)
	second := json.RawMessage(`{"endpoint":"https://push.example/b"}`)

	if err := repo.UpsertPushSubscription(ctx, "user-1", first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.UpsertPushSubscription(ctx, "user-1", second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	sub, err := repo.GetPushSubscription(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetPushSubscription failed: %v", err)
	}
	if sub == nil {
		t.Fatal("expected a subscription")
	}
	if string(sub.Subscription) != string(second) {
		t.Errorf("expected latest descriptor, got %s", sub.Subscription)
	}
}

func TestUpsertPushSubscriptionRejectsInvalidJSON(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if err := repo.UpsertPushSubscription(ctx, "user-1", json.RawMessage(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestGetPushSubscriptionMissingReturnsNil(t *testing.T) {
	repo := newTestStore(t)

	sub, err := repo.GetPushSubscription(context.Background(), "niemand")
	if err != nil {
		t.Fatalf("GetPushSubscription failed: %v", err)
	}
	if sub != nil {
		t.Fatalf("expected nil, got %+v", sub)
	}
}
