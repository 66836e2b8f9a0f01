package scoring

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

var allPositions = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender,
	player.PositionMidfielder,
	player.PositionForward,
}

func randomPerformance(f *gofakeit.Faker) Performance {
	return Performance{
		Goals:         f.Number(0, 4),
		Assists:       f.Number(0, 3),
		YellowCards:   f.Number(0, 2),
		RedCards:      f.Number(0, 1),
		CleanSheet:    f.Bool(),
		MinutesPlayed: f.Number(0, MaxMinutesPlayed),
	}
}

func expectedPoints(position player.Position, perf Performance) int {
	points := 4*perf.Goals + 3*perf.Assists - perf.YellowCards - 3*perf.RedCards
	if perf.CleanSheet && (position == player.PositionGoalkeeper || position == player.PositionDefender) {
		points += 4
	}
	if perf.MinutesPlayed >= 60 {
		points += 2
	}
	return points
}

func TestComputePoints_RandomPerformances(t *testing.T) {
	f := gofakeit.New(20261014)
	rules := DefaultRules()

	for i := 0; i < 500; i++ {
		position := allPositions[f.Number(0, len(allPositions)-1)]
		perf := randomPerformance(f)

		first, err := ComputePoints(position, perf)
		if err != nil {
			t.Fatalf("compute %s %+v: %v", position, perf, err)
		}
		second, _ := ComputePoints(position, perf)
		if first != second {
			t.Fatalf("non-deterministic result for %s %+v: %d then %d", position, perf, first, second)
		}
		if want := expectedPoints(position, perf); first != want {
			t.Fatalf("points for %s %+v = %d, want %d", position, perf, first, want)
		}

		items, err := rules.Breakdown(position, perf)
		if err != nil {
			t.Fatalf("breakdown %s %+v: %v", position, perf, err)
		}
		if got := Sum(items); got != first {
			t.Fatalf("breakdown sum %d differs from points %d for %s %+v", got, first, position, perf)
		}
	}
}
