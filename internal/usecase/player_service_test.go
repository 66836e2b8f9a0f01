package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
	"github.com/riskibarqy/spl-fantasy/internal/infrastructure/repository/memory"
)

func TestPlayerService_List(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()))
	ctx := t.Context()

	forwards, err := svc.List(ctx, PlayerFilterInput{Position: "fwd", SortBy: "price", Descending: true, Limit: 2})
	if err != nil {
		t.Fatalf("list forwards: %v", err)
	}
	if len(forwards) != 2 || forwards[0].ID != "spl-fwd-01" || forwards[1].ID != "spl-fwd-02" {
		t.Fatalf("unexpected forwards: %+v", forwards)
	}

	cheap, err := svc.List(ctx, PlayerFilterInput{Position: "GK", MaxPrice: 50, SortBy: "price"})
	if err != nil {
		t.Fatalf("list cheap keepers: %v", err)
	}
	if len(cheap) != 2 || cheap[0].Price != 45 || cheap[1].Price != 50 {
		t.Fatalf("unexpected keepers: %+v", cheap)
	}
	for _, p := range cheap {
		if p.Position != player.PositionGoalkeeper {
			t.Fatalf("unexpected position %s", p.Position)
		}
	}

	all, err := svc.List(ctx, PlayerFilterInput{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != len(memory.SeedPlayers()) {
		t.Fatalf("expected %d players, got %d", len(memory.SeedPlayers()), len(all))
	}
}

func TestPlayerService_List_RejectsBadFilters(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()))
	cases := []struct {
		name  string
		input PlayerFilterInput
	}{
		{name: "unknown position", input: PlayerFilterInput{Position: "striker"}},
		{name: "negative price", input: PlayerFilterInput{MaxPrice: -1}},
		{name: "unknown sort", input: PlayerFilterInput{SortBy: "age"}},
		{name: "negative limit", input: PlayerFilterInput{Limit: -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.List(t.Context(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPlayerService_Get(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()))
	p, err := svc.Get(t.Context(), " spl-mid-01 ")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.ClubID != memory.ClubIDAlIttihad {
		t.Fatalf("unexpected club %s", p.ClubID)
	}

	if _, err := svc.Get(t.Context(), "spl-mid-99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(t.Context(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
