package scoring

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPerformance = errors.New("invalid performance")
	ErrAlreadyScored      = errors.New("performance already scored for player and match")
)

// MaxMinutesPlayed bounds MinutesPlayed, covering extra time.
const MaxMinutesPlayed = 120

// Performance is the raw stat line of one player in one match.
type Performance struct {
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	CleanSheet    bool
	MinutesPlayed int
}

// InputError reports a rejected performance field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidPerformance, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidPerformance
}

// Validate rejects negative counts and minutes outside [0, MaxMinutesPlayed].
func (p Performance) Validate() error {
	counts := []struct {
		field string
		value int
	}{
		{"goals", p.Goals},
		{"assists", p.Assists},
		{"yellowCards", p.YellowCards},
		{"redCards", p.RedCards},
	}
	for _, c := range counts {
		if c.value < 0 {
			return &InputError{Field: c.field, Reason: "must not be negative"}
		}
	}
	if p.MinutesPlayed < 0 || p.MinutesPlayed > MaxMinutesPlayed {
		return &InputError{
			Field:  "minutesPlayed",
			Reason: fmt.Sprintf("must be between 0 and %d", MaxMinutesPlayed),
		}
	}
	return nil
}

// Record is a scored performance. It is created once per (player, match)
// and never updated.
type Record struct {
	PlayerID string
	MatchID  string
	Performance
	Points    int
	CreatedAt time.Time
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.PlayerID) == "" {
		return fmt.Errorf("performance player id is required")
	}
	if strings.TrimSpace(r.MatchID) == "" {
		return fmt.Errorf("performance match id is required")
	}
	return r.Performance.Validate()
}
