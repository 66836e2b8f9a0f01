package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

func TestBreakdown_LineItemsInRuleOrder(t *testing.T) {
	perf := Performance{Assists: 1, RedCards: 1, CleanSheet: true, MinutesPlayed: 90}

	got, err := DefaultRules().Breakdown(player.PositionDefender, perf)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}

	want := []LineItem{
		{Rule: RuleAssists, Count: 1, Points: 3},
		{Rule: RuleRedCards, Count: 1, Points: -3},
		{Rule: RuleCleanSheet, Count: 1, Points: 4},
		{Rule: RuleAppearance, Count: 1, Points: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("breakdown mismatch (-want +got):\n%s", diff)
	}
	if Sum(got) != 6 {
		t.Fatalf("expected 6 points, got %d", Sum(got))
	}
}

func TestBreakdown_MidfielderGetsNoCleanSheet(t *testing.T) {
	perf := Performance{Goals: 1, CleanSheet: true, MinutesPlayed: 59}

	got, err := DefaultRules().Breakdown(player.PositionMidfielder, perf)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}

	want := []LineItem{{Rule: RuleGoals, Count: 1, Points: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("breakdown mismatch (-want +got):\n%s", diff)
	}
}
