package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

var (
	ErrSquadFull         = errors.New("squad is full")
	ErrDuplicatePlayer   = errors.New("player already in squad")
	ErrPlayerNotInSquad  = errors.New("player not in squad")
	ErrInvalidSquadEntry = errors.New("invalid squad entry")
)

// Entry is one selected player.
type Entry struct {
	Player       player.Player
	IsStartingXI bool
}

// Selection is a squad under construction. It is a plain value owned by the
// caller; mutators only reject adding to a full squad or adding a duplicate,
// everything else is left to ValidateSquad.
type Selection struct {
	Entries       []Entry
	CaptainID     string
	ViceCaptainID string
}

// Clone returns a copy that shares no entries with s.
func (s Selection) Clone() Selection {
	out := s
	out.Entries = append([]Entry(nil), s.Entries...)
	return out
}

func (s Selection) Len() int {
	return len(s.Entries)
}

func (s Selection) Contains(playerID string) bool {
	return s.indexOf(playerID) >= 0
}

func (s Selection) Entry(playerID string) (Entry, bool) {
	idx := s.indexOf(playerID)
	if idx < 0 {
		return Entry{}, false
	}
	return s.Entries[idx], true
}

// PlayerIDs returns ids in entry order.
func (s Selection) PlayerIDs() []string {
	ids := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		ids = append(ids, e.Player.ID)
	}
	return ids
}

func (s Selection) indexOf(playerID string) int {
	if playerID == "" {
		return -1
	}
	for i, e := range s.Entries {
		if e.Player.ID == playerID {
			return i
		}
	}
	return -1
}

// Add appends p to the starting XI.
func (s *Selection) Add(p player.Player) error {
	if p.ID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidSquadEntry)
	}
	if s.Contains(p.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
	}
	if len(s.Entries) >= SquadCapacity {
		return fmt.Errorf("%w: capacity=%d", ErrSquadFull, SquadCapacity)
	}
	s.Entries = append(s.Entries, Entry{Player: p, IsStartingXI: true})
	return nil
}

// Remove drops the player and any role it held. It reports whether the
// player was present.
func (s *Selection) Remove(playerID string) bool {
	idx := s.indexOf(playerID)
	if idx < 0 {
		return false
	}
	s.Entries = append(s.Entries[:idx:idx], s.Entries[idx+1:]...)
	if s.CaptainID == playerID {
		s.CaptainID = ""
	}
	if s.ViceCaptainID == playerID {
		s.ViceCaptainID = ""
	}
	return true
}

func (s *Selection) ToggleStartingXI(playerID string) error {
	idx := s.indexOf(playerID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotInSquad, playerID)
	}
	s.Entries[idx].IsStartingXI = !s.Entries[idx].IsStartingXI
	return nil
}

func (s *Selection) SetStartingXI(playerID string, starting bool) error {
	idx := s.indexOf(playerID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotInSquad, playerID)
	}
	s.Entries[idx].IsStartingXI = starting
	return nil
}

// SetCaptain assigns the captaincy, clearing the vice-captaincy if the same
// player held it.
func (s *Selection) SetCaptain(playerID string) {
	s.CaptainID = playerID
	if s.ViceCaptainID == playerID {
		s.ViceCaptainID = ""
	}
}

func (s *Selection) ClearCaptain() {
	s.CaptainID = ""
}

// SetViceCaptain assigns the vice-captaincy, clearing the captaincy if the
// same player held it.
func (s *Selection) SetViceCaptain(playerID string) {
	s.ViceCaptainID = playerID
	if s.CaptainID == playerID {
		s.CaptainID = ""
	}
}

func (s *Selection) ClearViceCaptain() {
	s.ViceCaptainID = ""
}

// SelectionFromLinks rebuilds a selection from persisted links. Links whose
// player is missing from players are skipped.
func SelectionFromLinks(links []TeamPlayerLink, players map[string]player.Player) Selection {
	var sel Selection
	for _, link := range links {
		p, ok := players[link.PlayerID]
		if !ok {
			continue
		}
		sel.Entries = append(sel.Entries, Entry{Player: p, IsStartingXI: link.IsStartingXI})
		if link.IsCaptain {
			sel.CaptainID = link.PlayerID
		}
		if link.IsViceCaptain {
			sel.ViceCaptainID = link.PlayerID
		}
	}
	return sel
}
