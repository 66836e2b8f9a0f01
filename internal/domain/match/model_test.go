package match

import (
	"testing"
	"time"
)

func TestMatchValidate(t *testing.T) {
	base := Match{
		ID:         "m1",
		SeasonID:   "s1",
		Round:      1,
		HomeClubID: "al-jaish",
		AwayClubID: "tishreen",
		KickoffAt:  time.Date(2026, 10, 16, 17, 0, 0, 0, time.UTC),
		Status:     StatusScheduled,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid match, got %v", err)
	}

	self := base
	self.AwayClubID = base.HomeClubID
	if err := self.Validate(); err == nil {
		t.Fatalf("expected error for same club on both sides")
	}

	noRound := base
	noRound.Round = 0
	if err := noRound.Validate(); err == nil {
		t.Fatalf("expected error for round 0")
	}

	if !base.Involves("tishreen") || base.Involves("hutteen") || base.Involves("") {
		t.Fatalf("unexpected Involves result")
	}
}
