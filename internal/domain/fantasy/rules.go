package fantasy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

const (
	// SquadCapacity is the hard ceiling enforced by Selection.Add.
	SquadCapacity = 15
	// StartingXISize is the number of starters that earn points.
	StartingXISize = 11
	// DefaultBudget is 100.0 budget units in price tenths.
	DefaultBudget int64 = 1000

	CaptainMultiplier     = 2.0
	ViceCaptainMultiplier = 1.5
)

var ErrUnknownPolicy = errors.New("unknown squad rules policy")

// Policy names a squad composition rule set.
type Policy string

const (
	PolicyFlexible Policy = "flexible"
	PolicyLegacy   Policy = "legacy"
)

// Band is an inclusive count range for one position.
type Band struct {
	Min int
	Max int
}

// Rules stores squad validation parameters.
type Rules struct {
	Policy         Policy
	MinSquadSize   int
	MaxSquadSize   int
	StartingXISize int
	Budget         int64
	Bands          map[player.Position]Band
}

// FlexibleRules allows 11 to 15 players with ranged position quotas.
func FlexibleRules() Rules {
	return Rules{
		Policy:         PolicyFlexible,
		MinSquadSize:   StartingXISize,
		MaxSquadSize:   SquadCapacity,
		StartingXISize: StartingXISize,
		Budget:         DefaultBudget,
		Bands: map[player.Position]Band{
			player.PositionGoalkeeper: {Min: 1, Max: 2},
			player.PositionDefender:   {Min: 3, Max: 6},
			player.PositionMidfielder: {Min: 3, Max: 6},
			player.PositionForward:    {Min: 1, Max: 3},
		},
	}
}

// LegacyRules requires exactly 15 players split 2/5/5/3.
func LegacyRules() Rules {
	return Rules{
		Policy:         PolicyLegacy,
		MinSquadSize:   SquadCapacity,
		MaxSquadSize:   SquadCapacity,
		StartingXISize: StartingXISize,
		Budget:         DefaultBudget,
		Bands: map[player.Position]Band{
			player.PositionGoalkeeper: {Min: 2, Max: 2},
			player.PositionDefender:   {Min: 5, Max: 5},
			player.PositionMidfielder: {Min: 5, Max: 5},
			player.PositionForward:    {Min: 3, Max: 3},
		},
	}
}

// RulesForPolicy resolves a configured policy name. A budget <= 0 keeps the
// default.
func RulesForPolicy(raw string, budget int64) (Rules, error) {
	var rules Rules
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyFlexible:
		rules = FlexibleRules()
	case PolicyLegacy:
		rules = LegacyRules()
	default:
		return Rules{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, raw)
	}
	if budget > 0 {
		rules.Budget = budget
	}
	return rules, nil
}

func (r Rules) Band(pos player.Position) (Band, bool) {
	b, ok := r.Bands[pos]
	return b, ok
}
