package scoring

import (
	"errors"
	"testing"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

func TestComputePoints_Table(t *testing.T) {
	tests := []struct {
		name     string
		position player.Position
		perf     Performance
		want     int
	}{
		{
			name:     "goalkeeper clean sheet full match",
			position: player.PositionGoalkeeper,
			perf:     Performance{CleanSheet: true, MinutesPlayed: 90},
			want:     6,
		},
		{
			name:     "forward brace ignores clean sheet",
			position: player.PositionForward,
			perf:     Performance{Goals: 2, Assists: 1, YellowCards: 1, CleanSheet: true, MinutesPlayed: 90},
			want:     12,
		},
		{
			name:     "defender sent off before the hour",
			position: player.PositionDefender,
			perf:     Performance{RedCards: 1, MinutesPlayed: 45},
			want:     -3,
		},
		{
			name:     "midfielder clean sheet has no effect",
			position: player.PositionMidfielder,
			perf:     Performance{CleanSheet: true, MinutesPlayed: 59},
			want:     0,
		},
		{
			name:     "appearance bonus at exactly sixty",
			position: player.PositionMidfielder,
			perf:     Performance{MinutesPlayed: 60},
			want:     2,
		},
		{
			name:     "no extra credit beyond sixty",
			position: player.PositionForward,
			perf:     Performance{MinutesPlayed: 120},
			want:     2,
		},
		{
			name:     "two reds without minutes",
			position: player.PositionForward,
			perf:     Performance{RedCards: 2},
			want:     -6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputePoints(tt.position, tt.perf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("points mismatch: got=%d want=%d", got, tt.want)
			}

			again, _ := ComputePoints(tt.position, tt.perf)
			if again != got {
				t.Fatalf("non-deterministic result: %d then %d", got, again)
			}
		})
	}
}

func TestComputePoints_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		position player.Position
		perf     Performance
		field    string
	}{
		{name: "negative goals", position: player.PositionForward, perf: Performance{Goals: -1}, field: "goals"},
		{name: "negative assists", position: player.PositionForward, perf: Performance{Assists: -2}, field: "assists"},
		{name: "negative yellow", position: player.PositionDefender, perf: Performance{YellowCards: -1}, field: "yellowCards"},
		{name: "negative red", position: player.PositionDefender, perf: Performance{RedCards: -1}, field: "redCards"},
		{name: "negative minutes", position: player.PositionMidfielder, perf: Performance{MinutesPlayed: -5}, field: "minutesPlayed"},
		{name: "minutes above limit", position: player.PositionMidfielder, perf: Performance{MinutesPlayed: 121}, field: "minutesPlayed"},
		{name: "unknown position", position: player.Position("LW"), perf: Performance{}, field: "position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputePoints(tt.position, tt.perf)
			if !errors.Is(err, ErrInvalidPerformance) {
				t.Fatalf("expected ErrInvalidPerformance, got %v", err)
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InputError, got %T", err)
			}
			if inputErr.Field != tt.field {
				t.Fatalf("field mismatch: got=%s want=%s", inputErr.Field, tt.field)
			}
		})
	}
}

func TestBreakdown_ForwardHatTrickCountsEachGoal(t *testing.T) {
	items, err := DefaultRules().Breakdown(player.PositionForward, Performance{
		Goals:         3,
		Assists:       2,
		YellowCards:   2,
		CleanSheet:    true,
		MinutesPlayed: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, item := range items {
		if item.Rule == RuleCleanSheet {
			t.Fatalf("forward must not earn a clean sheet item: %+v", items)
		}
	}
	if items[0].Rule != RuleGoals || items[0].Count != 3 || items[0].Points != 12 {
		t.Fatalf("unexpected goals item: %+v", items[0])
	}
	if items[len(items)-1].Rule != RuleAppearance {
		t.Fatalf("expected appearance at exactly 60 minutes, got %+v", items)
	}
	if got := Sum(items); got != 12+6-2+2 {
		t.Fatalf("expected sum 18, got %d", got)
	}
}

func TestComputeWithRules_CustomTable(t *testing.T) {
	rules := DefaultRules()
	rules.GoalPoints = 6
	rules.CleanSheetPositions = []player.Position{player.PositionGoalkeeper}

	got, err := ComputeWithRules(rules, player.PositionDefender, Performance{Goals: 1, CleanSheet: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}
