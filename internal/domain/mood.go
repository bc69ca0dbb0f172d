package domain

import (
	"fmt"
	"time"
)

const (
	// MoodMin is the lowest recordable mood score.
	MoodMin = 1
	// MoodMax is the highest recordable mood score.
	MoodMax = 5
)

// MoodSample is one recorded mood score. Samples are append-only; a user may
// record several per day and all of them are retained.
type MoodSample struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Mood      int       `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateMood checks that a mood score lies in the 1-5 range.
func ValidateMood(mood int) error {
	if mood < MoodMin || mood > MoodMax {
		return fmt.Errorf("mood %d out of range (%d-%d)", mood, MoodMin, MoodMax)
	}
	return nil
}

// AverageMood returns the rounded average of the samples, or 0 when empty.
func AverageMood(samples []*MoodSample) int {
	if len(samples) == 0 {
		return 0
	}
	sum := 0
	for _, s := range samples {
		sum += s.Mood
	}
	return (sum + len(samples)/2) / len(samples)
}
