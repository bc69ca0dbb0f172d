package journal

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spura-app/spura/internal/completion"
	"github.com/spura-app/spura/internal/domain"
	"github.com/spura-app/spura/internal/store"
)

type fakeCompletion struct {
	mu      sync.Mutex
	calls   int
	lastReq completion.Request
	reply   string
	err     error
}

func (f *fakeCompletion) Complete(_ context.Context, req completion.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompletion) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRepo struct {
	store.Repository
	userEntryCount int
	countErr       error
}

func (f *fakeRepo) CountUserEntries(_ context.Context, _ string) (int, error) {
	return f.userEntryCount, f.countErr
}

func TestChatUsesPersonaAndForwardsTurns(t *testing.T) {
	t.Parallel()

	llm := &fakeCompletion{reply: "Das klingt anstrengend. Was genau macht dich müde?"}
	svc := NewService(llm, &fakeRepo{}, nil)

	turns := []domain.Turn{{Role: domain.RoleUser, Content: "Ich bin müde"}}
	reply, err := svc.Chat(context.Background(), "user-1", turns)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != llm.reply {
		t.Errorf("unexpected reply: %q", reply)
	}
	if !strings.Contains(llm.lastReq.System, "Tagebuch-Begleiter") {
		t.Errorf("expected persona instruction, got %q", llm.lastReq.System)
	}
	if len(llm.lastReq.Turns) != 1 || llm.lastReq.Turns[0].Content != "Ich bin müde" {
		t.Errorf("turns not forwarded: %+v", llm.lastReq.Turns)
	}
}

func TestChatRejectsEmptyTurns(t *testing.T) {
	t.Parallel()

	llm := &fakeCompletion{}
	svc := NewService(llm, &fakeRepo{}, nil)

	if _, err := svc.Chat(context.Background(), "user-1", nil); !errors.Is(err, ErrNoTurns) {
		t.Fatalf("expected ErrNoTurns, got %v", err)
	}
	if llm.callCount() != 0 {
		t.Errorf("expected no provider call, got %d", llm.callCount())
	}
}

func TestGuidedSessionSynthesizesOpeningTurn(t *testing.T) {
	t.Parallel()

	llm := &fakeCompletion{reply: "Willkommen. Was belastet dich gerade am meisten?"}
	svc := NewService(llm, &fakeRepo{}, nil)

	topic, ok := domain.TopicByID("stress")
	if !ok {
		t.Fatal("stress topic not found")
	}

	if _, err := svc.GuidedSession(context.Background(), "user-1", topic.Prompt, nil); err != nil {
		t.Fatalf("GuidedSession failed: %v", err)
	}
	if len(llm.lastReq.Turns) != 1 {
		t.Fatalf("expected one synthetic turn, got %d", len(llm.lastReq.Turns))
	}
	if got := llm.lastReq.Turns[0]; got.Role != domain.RoleUser || got.Content != "Starte die Session." {
		t.Errorf("unexpected synthetic turn: %+v", got)
	}
	if !strings.HasSuffix(llm.lastReq.System, "Stelle immer nur eine Frage.") {
		t.Errorf("expected one-question constraint in system prompt, got %q", llm.lastReq.System)
	}
}

func TestGuidedSessionRejectsEmptyPrompt(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeCompletion{}, &fakeRepo{}, nil)
	if _, err := svc.GuidedSession(context.Background(), "user-1", "  ", nil); !errors.Is(err, ErrEmptyTopicText) {
		t.Fatalf("expected ErrEmptyTopicText, got %v", err)
	}
}

func TestWeeklyReviewEmptyWeekSkipsProvider(t *testing.T) {
	t.Parallel()

	llm := &fakeCompletion{}
	svc := NewService(llm, &fakeRepo{}, nil)

	reply, err := svc.WeeklyReview(context.Background(), "user-1", nil)
	if err != nil {
		t.Fatalf("WeeklyReview failed: %v", err)
	}
	if reply != "Keine Einträge diese Woche." {
		t.Errorf("unexpected canned reply: %q", reply)
	}
	if llm.callCount() != 0 {
		t.Errorf("expected no provider call, got %d", llm.callCount())
	}
}

func TestWeeklyReviewFiltersAssistantTurns(t *testing.T) {
	t.Parallel()

	llm := &fakeCompletion{reply: "1. 🌟 ..."}
	svc := NewService(llm, &fakeRepo{}, nil)

	turns := []domain.Turn{
		{Role: domain.RoleUser, Content: "Montag war stressig"},
		{Role: domain.RoleAssistant, Content: "Das tut mir leid."},
		{Role: domain.RoleUser, Content: "Dienstag war besser"},
	}
	if _, err := svc.WeeklyReview(context.Background(), "user-1", turns); err != nil {
		t.Fatalf("WeeklyReview failed: %v", err)
	}

	content := llm.lastReq.Turns[0].Content
	if !strings.Contains(content, "Montag war stressig") || !strings.Contains(content, "Dienstag war besser") {
		t.Errorf("user turns missing from prompt: %q", content)
	}
	if strings.Contains(content, "Das tut mir leid.") {
		t.Errorf("assistant turn leaked into prompt: %q", content)
	}
	if !strings.Contains(content, "\n---\n") {
		t.Errorf("expected separator between entries: %q", content)
	}
}

func TestMirrorRequiresMinimumEntries(t *testing.T) {
	t.Parallel()

	llm := &fakeCompletion{}
	svc := NewService(llm, &fakeRepo{userEntryCount: MinMirrorEntries - 1}, nil)

	texts := []string{"a", "b", "c", "d"}
	if _, err := svc.Mirror(context.Background(), "user-1", texts); !errors.Is(err, ErrTooFewEntries) {
		t.Fatalf("expected ErrTooFewEntries, got %v", err)
	}
	if llm.callCount() != 0 {
		t.Errorf("expected no provider call, got %d", llm.callCount())
	}
}

func TestMirrorParsesStructuredReply(t *testing.T) {
	t.Parallel()

	mirror := domain.Mirror{
		Satz:      "Du bist ein aufmerksamer Beobachter.",
		Denkweise: "Du denkst in Zusammenhängen.",
		Staerken:  "Du bleibst dran.",
		Wachstum:  "Du darfst milder mit dir sein.",
		Werte:     "Ehrlichkeit und Ruhe.",
	}
	raw, err := json.Marshal(mirror)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	llm := &fakeCompletion{reply: string(raw)}
	svc := NewService(llm, &fakeRepo{userEntryCount: MinMirrorEntries}, nil)

	got, err := svc.Mirror(context.Background(), "user-1", []string{"e1", "e2", "e3", "e4", "e5"})
	if err != nil {
		t.Fatalf("Mirror failed: %v", err)
	}
	if got != mirror {
		t.Errorf("mirror mismatch:\n got %+v\nwant %+v", got, mirror)
	}
	if llm.lastReq.MaxTokens != mirrorMaxTokens {
		t.Errorf("expected %d max tokens, got %d", mirrorMaxTokens, llm.lastReq.MaxTokens)
	}
}

func TestMirrorStripsMarkdownFence(t *testing.T) {
	t.Parallel()

	llm := &fakeCompletion{reply: "```json\n{\"satz\":\"S\",\"denkweise\":\"D\",\"staerken\":\"St\",\"wachstum\":\"W\",\"werte\":\"We\"}\n```"}
	svc := NewService(llm, &fakeRepo{userEntryCount: MinMirrorEntries}, nil)

	got, err := svc.Mirror(context.Background(), "user-1", []string{"e1", "e2", "e3", "e4", "e5"})
	if err != nil {
		t.Fatalf("Mirror failed: %v", err)
	}
	if !got.Complete() {
		t.Errorf("expected all fields populated: %+v", got)
	}
}

func TestMirrorParseFailureIsHandled(t *testing.T) {
	t.Parallel()

	llm := &fakeCompletion{reply: "Leider kann ich kein JSON."}
	svc := NewService(llm, &fakeRepo{userEntryCount: MinMirrorEntries}, nil)

	if _, err := svc.Mirror(context.Background(), "user-1", []string{"e1", "e2", "e3", "e4", "e5"}); !errors.Is(err, ErrMirrorParse) {
		t.Fatalf("expected ErrMirrorParse, got %v", err)
	}
}

func TestDailyQuestionRotatesByDayOfYear(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeCompletion{}, &fakeRepo{}, nil)

	day1 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	day11 := time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC)

	if svc.DailyQuestion(day1) != svc.DailyQuestion(day11) {
		t.Error("expected rotation to wrap after ten questions")
	}
	if svc.DailyQuestion(day1) == svc.DailyQuestion(day1.AddDate(0, 0, 1)) {
		t.Error("expected consecutive days to differ")
	}
	if svc.DailyQuestion(day1) != svc.DailyQuestion(day1) {
		t.Error("expected same day to be deterministic")
	}
}
