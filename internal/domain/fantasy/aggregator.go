package fantasy

import "github.com/riskibarqy/spl-fantasy/internal/domain/player"

func TotalCost(sel Selection) int64 {
	var total int64
	for _, e := range sel.Entries {
		total += e.Player.Price
	}
	return total
}

// TotalPoints previews current-week points. Only starters score; the
// captain earns double and the vice-captain one and a half.
func TotalPoints(sel Selection) float64 {
	var total float64
	for _, e := range sel.Entries {
		total += float64(e.Player.WeekPoints()) * sel.Multiplier(e.Player.ID)
	}
	return total
}

// Multiplier returns the scoring weight of a player in the selection. Bench
// players and non-members weigh zero.
func (s Selection) Multiplier(playerID string) float64 {
	e, ok := s.Entry(playerID)
	if !ok || !e.IsStartingXI {
		return 0
	}
	switch playerID {
	case s.CaptainID:
		return CaptainMultiplier
	case s.ViceCaptainID:
		return ViceCaptainMultiplier
	default:
		return 1
	}
}

func PositionCount(sel Selection, pos player.Position) int {
	n := 0
	for _, e := range sel.Entries {
		if e.Player.Position == pos {
			n++
		}
	}
	return n
}

func PositionCounts(sel Selection) map[player.Position]int {
	counts := make(map[player.Position]int, len(player.Positions))
	for _, pos := range player.Positions {
		counts[pos] = 0
	}
	for _, e := range sel.Entries {
		counts[e.Player.Position]++
	}
	return counts
}

func StartingXI(sel Selection) []Entry {
	out := make([]Entry, 0, len(sel.Entries))
	for _, e := range sel.Entries {
		if e.IsStartingXI {
			out = append(out, e)
		}
	}
	return out
}

func Bench(sel Selection) []Entry {
	out := make([]Entry, 0)
	for _, e := range sel.Entries {
		if !e.IsStartingXI {
			out = append(out, e)
		}
	}
	return out
}

// RemainingBudget may be negative.
func RemainingBudget(sel Selection, budget int64) int64 {
	return budget - TotalCost(sel)
}

// Summary bundles the derived views of a selection.
type Summary struct {
	TotalCost       int64
	RemainingBudget int64
	TotalPoints     float64
	PositionCounts  map[player.Position]int
	StartingXI      []Entry
	Bench           []Entry
	Validation      ValidationResult
}

func Summarize(sel Selection, rules Rules) Summary {
	return Summary{
		TotalCost:       TotalCost(sel),
		RemainingBudget: RemainingBudget(sel, rules.Budget),
		TotalPoints:     TotalPoints(sel),
		PositionCounts:  PositionCounts(sel),
		StartingXI:      StartingXI(sel),
		Bench:           Bench(sel),
		Validation:      ValidateSquad(sel, rules),
	}
}
