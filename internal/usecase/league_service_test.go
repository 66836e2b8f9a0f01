package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
	"github.com/riskibarqy/spl-fantasy/internal/infrastructure/repository/memory"
)

func TestLeagueService_CreatePrivateAndJoinByInvite(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	env.league.inviteCode = func() (string, error) { return "HOMS2026", nil }

	created, err := env.league.Create(ctx, CreateLeagueInput{UserID: "owner", Name: " Orontes League ", Visibility: "private"})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if created.ID != "league-001" || created.InviteCode != "HOMS2026" || created.Name != "Orontes League" {
		t.Fatalf("unexpected league: %+v", created)
	}

	if _, err := env.league.Join(ctx, JoinLeagueInput{UserID: "guest", LeagueID: created.ID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden joining private league by id, got %v", err)
	}

	joined, err := env.league.Join(ctx, JoinLeagueInput{UserID: "guest", InviteCode: " homs2026 "})
	if err != nil {
		t.Fatalf("join by invite: %v", err)
	}
	if joined.ID != created.ID {
		t.Fatalf("joined wrong league %s", joined.ID)
	}
	if _, err := env.league.Join(ctx, JoinLeagueInput{UserID: "guest", InviteCode: "HOMS2026"}); err != nil {
		t.Fatalf("second join should be idempotent: %v", err)
	}

	mine, err := env.league.ListMine(ctx, "guest")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("unexpected leagues: %+v", mine)
	}
}

func TestLeagueService_CreateRetriesInviteCollision(t *testing.T) {
	env := newTestEnv(t)
	codes := []string{"TAKEN234", "TAKEN234", "FRESH234"}
	env.league.inviteCode = func() (string, error) {
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}

	if _, err := env.league.Create(t.Context(), CreateLeagueInput{UserID: "a", Name: "First", Visibility: "private"}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := env.league.Create(t.Context(), CreateLeagueInput{UserID: "b", Name: "Second", Visibility: "private"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.InviteCode != "FRESH234" {
		t.Fatalf("expected retried invite code, got %s", second.InviteCode)
	}
}

func TestLeagueService_Leaderboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	teamA := saveValidTeam(t, env, "user-a")
	teamB := saveValidTeam(t, env, "user-b")
	teamC := saveValidTeam(t, env, "user-c")
	for teamID, pts := range map[string]float64{teamA: 30, teamB: 42.5, teamC: 30} {
		if err := env.teams.AddTeamPoints(ctx, teamID, pts); err != nil {
			t.Fatalf("add points: %v", err)
		}
	}

	board, err := env.league.Leaderboard(ctx, "user-a", memory.LeagueIDOverall)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	want := []league.Standing{
		{TeamID: teamB, Rank: 1, Points: 42.5},
		{TeamID: teamA, Rank: 2, Points: 30},
		{TeamID: teamC, Rank: 2, Points: 30},
	}
	if len(board) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(board))
	}
	for i, w := range want {
		if board[i].TeamID != w.TeamID || board[i].Rank != w.Rank || board[i].Points != w.Points {
			t.Fatalf("row %d: got=%+v want=%+v", i, board[i], w)
		}
	}

	if _, err := env.league.Leaderboard(ctx, "user-a", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
