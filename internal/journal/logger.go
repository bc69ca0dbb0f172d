package journal

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Event is one NDJSON record in the per-user conversation log.
type Event struct {
	Timestamp string `json:"ts"`
	UserID    string `json:"user_id"`
	Channel   string `json:"channel"`
	Role      string `json:"role"`
	Content   string `json:"content"`
}

// Logger appends conversation events to per-user NDJSON files. Writes happen
// on a background goroutine fed by a bounded queue; when the queue is full
// the event is dropped rather than blocking a request.
type Logger struct {
	dir    string
	queue  chan Event
	done   chan struct{}
	closed sync.Once
	log    *slog.Logger
}

// NewLogger creates a conversation logger rooted at dir. Returns nil when
// disabled so callers can pass the result straight to NewService.
func NewLogger(enabled bool, dir string, queueSize int, log *slog.Logger) (*Logger, error) {
	if !enabled {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal log directory: %w", err)
	}
	if queueSize <= 0 {
		queueSize = 1000
	}

	l := &Logger{
		dir:   dir,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
		log:   log,
	}
	go l.writeLoop()
	return l, nil
}

// Log enqueues one event. Never blocks.
func (l *Logger) Log(event Event) {
	select {
	case l.queue <- event:
	default:
		l.log.Warn("journal log queue full, dropping event", "user_id", event.UserID)
	}
}

// Close drains the queue and stops the writer goroutine.
func (l *Logger) Close() error {
	l.closed.Do(func() {
		close(l.queue)
		<-l.done
	})
	return nil
}

func (l *Logger) writeLoop() {
	defer close(l.done)
	for event := range l.queue {
		if err := l.write(event); err != nil {
			l.log.Warn("failed to write journal log event", "user_id", event.UserID, "error", err)
		}
	}
}

func (l *Logger) write(event Event) error {
	path := filepath.Join(l.dir, event.UserID+".ndjson")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open journal log file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.log.Warn("failed to close journal log file", "path", path, "error", closeErr)
		}
	}()

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal journal log event: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append journal log event: %w", err)
	}
	return nil
}
