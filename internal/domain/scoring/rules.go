package scoring

import (
	"fmt"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

// Rules is the additive point table.
type Rules struct {
	GoalPoints          int
	AssistPoints        int
	YellowCardPoints    int
	RedCardPoints       int
	CleanSheetPoints    int
	CleanSheetPositions []player.Position
	AppearancePoints    int
	AppearanceMinutes   int
}

func DefaultRules() Rules {
	return Rules{
		GoalPoints:          4,
		AssistPoints:        3,
		YellowCardPoints:    -1,
		RedCardPoints:       -3,
		CleanSheetPoints:    4,
		CleanSheetPositions: []player.Position{player.PositionGoalkeeper, player.PositionDefender},
		AppearancePoints:    2,
		AppearanceMinutes:   60,
	}
}

// LineItem is one rule's contribution to a point total.
type LineItem struct {
	Rule   string
	Count  int
	Points int
}

const (
	RuleGoals       = "goals"
	RuleAssists     = "assists"
	RuleYellowCards = "yellowCards"
	RuleRedCards    = "redCards"
	RuleCleanSheet  = "cleanSheet"
	RuleAppearance  = "appearance"
)

// ComputePoints scores a performance with DefaultRules.
func ComputePoints(position player.Position, perf Performance) (int, error) {
	return ComputeWithRules(DefaultRules(), position, perf)
}

func ComputeWithRules(rules Rules, position player.Position, perf Performance) (int, error) {
	items, err := rules.Breakdown(position, perf)
	if err != nil {
		return 0, err
	}
	return Sum(items), nil
}

// Breakdown lists the non-zero contributions in rule-table order.
func (r Rules) Breakdown(position player.Position, perf Performance) ([]LineItem, error) {
	if !position.Valid() {
		return nil, &InputError{Field: "position", Reason: fmt.Sprintf("unknown value %q", position)}
	}
	if err := perf.Validate(); err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, 6)
	add := func(rule string, count, perUnit int) {
		if count == 0 || perUnit == 0 {
			return
		}
		items = append(items, LineItem{Rule: rule, Count: count, Points: count * perUnit})
	}

	add(RuleGoals, perf.Goals, r.GoalPoints)
	add(RuleAssists, perf.Assists, r.AssistPoints)
	add(RuleYellowCards, perf.YellowCards, r.YellowCardPoints)
	add(RuleRedCards, perf.RedCards, r.RedCardPoints)
	if perf.CleanSheet && r.cleanSheetApplies(position) {
		add(RuleCleanSheet, 1, r.CleanSheetPoints)
	}
	if perf.MinutesPlayed >= r.AppearanceMinutes {
		add(RuleAppearance, 1, r.AppearancePoints)
	}

	return items, nil
}

func (r Rules) cleanSheetApplies(position player.Position) bool {
	for _, p := range r.CleanSheetPositions {
		if p == position {
			return true
		}
	}
	return false
}

func Sum(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Points
	}
	return total
}
