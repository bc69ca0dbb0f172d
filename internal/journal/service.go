// Package journal assembles conversations for each feature and routes them
// through the completion provider.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spura-app/spura/internal/completion"
	"github.com/spura-app/spura/internal/domain"
	"github.com/spura-app/spura/internal/store"
)

const (
	// MinMirrorEntries is the number of user-authored entries required
	// before the personality mirror can be computed.
	MinMirrorEntries = 5

	chatMaxTokens   = 1024
	mirrorMaxTokens = 2048
)

// Sentinel errors mapped to client-facing status codes by the API layer.
var (
	ErrNoTurns        = errors.New("journal: no turns submitted")
	ErrTooFewEntries  = errors.New("journal: not enough entries for a mirror")
	ErrMirrorParse    = errors.New("journal: mirror response is not valid JSON")
	ErrUnknownTopic   = errors.New("journal: unknown session topic")
	ErrEmptyTopicText = errors.New("journal: session prompt cannot be empty")
)

// Service assembles turn lists per feature and calls the completion provider.
type Service struct {
	llm  completion.Client
	repo store.Repository
	log  *Logger
}

// NewService creates a journal service. The logger may be nil.
func NewService(llm completion.Client, repo store.Repository, log *Logger) *Service {
	return &Service{llm: llm, repo: repo, log: log}
}

// Chat answers a free-text diary conversation. The submitted turns are the
// full conversation so far, terminating in the user's newest message.
func (s *Service) Chat(ctx context.Context, userID string, turns []domain.Turn) (string, error) {
	if len(turns) == 0 {
		return "", ErrNoTurns
	}

	s.logTurn(userID, "chat", turns[len(turns)-1])

	reply, err := s.llm.Complete(ctx, completion.Request{
		System:    chatPersona,
		Turns:     turns,
		MaxTokens: chatMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	s.logTurn(userID, "chat", domain.Turn{Role: domain.RoleAssistant, Content: reply})
	return reply, nil
}

// GuidedSession answers one turn of a fixed-topic reflection session. An
// empty turn list is replaced by a single synthetic opening user turn so the
// assistant asks its first question.
func (s *Service) GuidedSession(ctx context.Context, userID, topicPrompt string, turns []domain.Turn) (string, error) {
	if strings.TrimSpace(topicPrompt) == "" {
		return "", ErrEmptyTopicText
	}

	if len(turns) == 0 {
		turns = []domain.Turn{{Role: domain.RoleUser, Content: sessionOpener}}
	}

	s.logTurn(userID, "session", turns[len(turns)-1])

	reply, err := s.llm.Complete(ctx, completion.Request{
		System:    topicPrompt + sessionSuffix,
		Turns:     turns,
		MaxTokens: chatMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("session completion: %w", err)
	}

	s.logTurn(userID, "session", domain.Turn{Role: domain.RoleAssistant, Content: reply})
	return reply, nil
}

// WeeklyReview summarizes the user-authored turns of the trailing week into
// a three-part narrative. With zero entries it returns the canned message
// and performs no provider call.
func (s *Service) WeeklyReview(ctx context.Context, userID string, turns []domain.Turn) (string, error) {
	userTurns := domain.UserTurns(turns)
	if len(userTurns) == 0 {
		return weeklyEmpty, nil
	}

	texts := make([]string, 0, len(userTurns))
	for _, t := range userTurns {
		texts = append(texts, t.Content)
	}

	prompt := domain.Turn{
		Role:    domain.RoleUser,
		Content: "Hier sind meine Tagebucheinträge der letzten Woche:\n\n" + strings.Join(texts, entrySeparator),
	}

	reply, err := s.llm.Complete(ctx, completion.Request{
		System:    weeklyPersona,
		Turns:     []domain.Turn{prompt},
		MaxTokens: chatMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("weekly review completion: %w", err)
	}
	return reply, nil
}

// Mirror computes the one-shot five-field personality summary from the
// submitted entry texts. It requires at least MinMirrorEntries user-authored
// entries in the store before any provider call happens.
func (s *Service) Mirror(ctx context.Context, userID string, texts []string) (domain.Mirror, error) {
	count, err := s.repo.CountUserEntries(ctx, userID)
	if err != nil {
		return domain.Mirror{}, fmt.Errorf("count entries: %w", err)
	}
	if count < MinMirrorEntries || len(texts) == 0 {
		return domain.Mirror{}, ErrTooFewEntries
	}

	prompt := domain.Turn{
		Role:    domain.RoleUser,
		Content: "Hier sind meine Tagebucheinträge:\n\n" + strings.Join(texts, entrySeparator),
	}

	reply, err := s.llm.Complete(ctx, completion.Request{
		System:    mirrorPersona,
		Turns:     []domain.Turn{prompt},
		MaxTokens: mirrorMaxTokens,
	})
	if err != nil {
		return domain.Mirror{}, fmt.Errorf("mirror completion: %w", err)
	}

	mirror, err := parseMirror(reply)
	if err != nil {
		return domain.Mirror{}, err
	}
	return mirror, nil
}

// DailyQuestion returns the canned question for the given day. The rotation
// is keyed by day of year so every user sees the same question on a day.
func (s *Service) DailyQuestion(now time.Time) string {
	return dailyQuestions[(now.YearDay()-1)%len(dailyQuestions)]
}

// parseMirror decodes the provider's JSON reply. Models routinely fence JSON
// in markdown despite instructions, so a surrounding fence is stripped first.
func parseMirror(reply string) (domain.Mirror, error) {
	text := strings.TrimSpace(reply)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var mirror domain.Mirror
	if err := json.Unmarshal([]byte(text), &mirror); err != nil {
		return domain.Mirror{}, fmt.Errorf("%w: %s", ErrMirrorParse, err)
	}
	return mirror, nil
}

func (s *Service) logTurn(userID, channel string, turn domain.Turn) {
	if s.log == nil {
		return
	}
	s.log.Log(Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		UserID:    userID,
		Channel:   channel,
		Role:      string(turn.Role),
		Content:   turn.Content,
	})
}
