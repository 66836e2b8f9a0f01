package fantasy

import (
	"fmt"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

// buildSquad creates a selection with the given position counts. The first
// eleven entries start, the first entry captains and the second vice-captains.
func buildSquad(gk, def, mid, fwd int) Selection {
	var sel Selection
	add := func(pos player.Position, n int) {
		for i := 0; i < n; i++ {
			sel.Entries = append(sel.Entries, Entry{
				Player: player.Player{
					ID:       fmt.Sprintf("%s-%d", pos, i+1),
					ClubID:   "club-jaish",
					Name:     fmt.Sprintf("%s player %d", pos, i+1),
					Position: pos,
					Price:    60,
				},
			})
		}
	}
	add(player.PositionGoalkeeper, gk)
	add(player.PositionDefender, def)
	add(player.PositionMidfielder, mid)
	add(player.PositionForward, fwd)

	for i := range sel.Entries {
		sel.Entries[i].IsStartingXI = i < StartingXISize
	}
	if len(sel.Entries) > 0 {
		sel.CaptainID = sel.Entries[0].Player.ID
	}
	if len(sel.Entries) > 1 {
		sel.ViceCaptainID = sel.Entries[1].Player.ID
	}
	return sel
}

func intPtr(v int) *int {
	return &v
}

func containsMessage(errs []string, want string) bool {
	for _, e := range errs {
		if e == want {
			return true
		}
	}
	return false
}
