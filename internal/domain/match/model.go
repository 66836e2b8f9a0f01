package match

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusFinished  Status = "finished"
)

// Season groups rounds; exactly one season is expected to be active.
type Season struct {
	ID       string
	Name     string
	IsActive bool
}

// Match is a fixture between two clubs in one round of a season.
type Match struct {
	ID         string
	SeasonID   string
	Round      int
	HomeClubID string
	AwayClubID string
	KickoffAt  time.Time
	HomeScore  *int
	AwayScore  *int
	Status     Status
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.SeasonID) == "" {
		return fmt.Errorf("match season id is required")
	}
	if m.Round < 1 {
		return fmt.Errorf("match round must be >= 1")
	}
	if m.HomeClubID == "" || m.AwayClubID == "" {
		return fmt.Errorf("home and away clubs are required")
	}
	if m.HomeClubID == m.AwayClubID {
		return fmt.Errorf("a club cannot play itself")
	}
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("match kickoff time is required")
	}
	return nil
}

// Involves reports whether clubID plays in the match.
func (m Match) Involves(clubID string) bool {
	return clubID != "" && (m.HomeClubID == clubID || m.AwayClubID == clubID)
}

func (m Match) IsFinished() bool {
	return m.Status == StatusFinished
}
