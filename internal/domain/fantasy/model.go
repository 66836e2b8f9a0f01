package fantasy

import (
	"fmt"
	"strings"
	"time"
)

// Team is the persisted result of a validated Selection. TotalPoints is a
// stored counter advanced by scoring ingestion, not derived from the squad.
type Team struct {
	ID          string
	UserID      string
	Name        string
	LeagueID    string
	TotalPoints float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.UserID) == "" {
		return fmt.Errorf("team user id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// TeamPlayerLink is the persisted shape of one selection entry.
type TeamPlayerLink struct {
	TeamID        string
	PlayerID      string
	IsCaptain     bool
	IsViceCaptain bool
	IsStartingXI  bool
}

// Multiplier returns the point multiplier the link earns when starting.
func (l TeamPlayerLink) Multiplier() float64 {
	if !l.IsStartingXI {
		return 0
	}
	switch {
	case l.IsCaptain:
		return CaptainMultiplier
	case l.IsViceCaptain:
		return ViceCaptainMultiplier
	default:
		return 1
	}
}

// BuildLinks produces the target link set for a team from a selection.
func BuildLinks(teamID string, sel Selection) []TeamPlayerLink {
	links := make([]TeamPlayerLink, 0, len(sel.Entries))
	for _, e := range sel.Entries {
		links = append(links, TeamPlayerLink{
			TeamID:        teamID,
			PlayerID:      e.Player.ID,
			IsCaptain:     sel.CaptainID != "" && e.Player.ID == sel.CaptainID,
			IsViceCaptain: sel.ViceCaptainID != "" && e.Player.ID == sel.ViceCaptainID && sel.ViceCaptainID != sel.CaptainID,
			IsStartingXI:  e.IsStartingXI,
		})
	}
	return links
}
