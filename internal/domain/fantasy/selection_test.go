package fantasy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

func TestSelection_AddRejectsDuplicateAndFull(t *testing.T) {
	var sel Selection
	for i := 0; i < SquadCapacity; i++ {
		p := player.Player{ID: fmt.Sprintf("p%d", i), Position: player.PositionMidfielder, Price: 50}
		if err := sel.Add(p); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	for _, e := range sel.Entries {
		if !e.IsStartingXI {
			t.Fatalf("expected new entries to start")
		}
	}

	if err := sel.Add(player.Player{ID: "p0"}); !errors.Is(err, ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
	if err := sel.Add(player.Player{ID: "p99"}); !errors.Is(err, ErrSquadFull) {
		t.Fatalf("expected ErrSquadFull, got %v", err)
	}
}

func TestSelection_CaptaincyExclusive(t *testing.T) {
	sel := buildSquad(2, 5, 5, 3)
	vice := sel.ViceCaptainID

	sel.SetCaptain(vice)
	if sel.CaptainID != vice {
		t.Fatalf("expected captain %s, got %s", vice, sel.CaptainID)
	}
	if sel.ViceCaptainID != "" {
		t.Fatalf("expected vice-captain cleared, got %s", sel.ViceCaptainID)
	}

	sel.SetViceCaptain(vice)
	if sel.ViceCaptainID != vice || sel.CaptainID != "" {
		t.Fatalf("expected captaincy moved to vice role, got captain=%q vice=%q", sel.CaptainID, sel.ViceCaptainID)
	}

	sel.ClearViceCaptain()
	if sel.ViceCaptainID != "" {
		t.Fatalf("expected vice-captain cleared")
	}
}

func TestSelection_RemoveClearsRoles(t *testing.T) {
	sel := buildSquad(2, 5, 5, 3)
	captain := sel.CaptainID
	original := sel.Clone()

	if !sel.Remove(captain) {
		t.Fatalf("expected captain removed")
	}
	if sel.CaptainID != "" {
		t.Fatalf("expected captaincy cleared on removal")
	}
	if sel.Len() != 14 || sel.Contains(captain) {
		t.Fatalf("unexpected selection after removal: %v", sel.PlayerIDs())
	}
	if original.Len() != 15 || original.Entries[0].Player.ID != captain {
		t.Fatalf("clone was mutated by Remove")
	}
	if sel.Remove("ghost") {
		t.Fatalf("expected removal of unknown player to report false")
	}
}

func TestSelection_ToggleStartingXI(t *testing.T) {
	sel := buildSquad(2, 5, 5, 3)
	id := sel.Entries[0].Player.ID

	if err := sel.ToggleStartingXI(id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if e, _ := sel.Entry(id); e.IsStartingXI {
		t.Fatalf("expected player benched")
	}
	if err := sel.ToggleStartingXI("ghost"); !errors.Is(err, ErrPlayerNotInSquad) {
		t.Fatalf("expected ErrPlayerNotInSquad, got %v", err)
	}
}
