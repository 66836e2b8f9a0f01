package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/spl-fantasy/internal/infrastructure/repository/memory"
)

func saveValidTeam(t *testing.T, env *testEnv, userID string) string {
	t.Helper()
	saved, err := env.squad.SaveTeam(t.Context(), SaveTeamInput{
		UserID:    userID,
		Name:      "Team " + userID,
		LeagueID:  memory.LeagueIDOverall,
		Selection: validSelection(),
	})
	if err != nil {
		t.Fatalf("save team for %s: %v", userID, err)
	}
	return saved.Team.ID
}

func finishMatch(t *testing.T, env *testEnv, matchID string) {
	t.Helper()
	if _, err := env.admin.FinishMatch(t.Context(), FinishMatchInput{MatchID: matchID, HomeScore: 1, AwayScore: 0}); err != nil {
		t.Fatalf("finish match %s: %v", matchID, err)
	}
}

func TestScoringService_RecordPerformance_AccruesWithMultipliers(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	teamID := saveValidTeam(t, env, "user-1")
	finishMatch(t, env, "spl-r1-03")

	inputs := []RecordPerformanceInput{
		{PlayerID: "spl-fwd-01", MatchID: "spl-r1-03", Goals: 1, MinutesPlayed: 90},   // captain: 6 x2
		{PlayerID: "spl-mid-01", MatchID: "spl-r1-03", Assists: 1, MinutesPlayed: 90}, // vice: 5 x1.5
		{PlayerID: "spl-def-04", MatchID: "spl-r1-03", MinutesPlayed: 90},             // bench: 2 x0
	}
	wantPoints := []int{6, 5, 2}
	for i, in := range inputs {
		got, err := env.scoring.RecordPerformance(ctx, in)
		if err != nil {
			t.Fatalf("record %s: %v", in.PlayerID, err)
		}
		if got.Record.Points != wantPoints[i] {
			t.Fatalf("points for %s: got=%d want=%d", in.PlayerID, got.Record.Points, wantPoints[i])
		}
	}

	team, _, _ := env.teams.GetTeam(ctx, teamID)
	if team.TotalPoints != 19.5 {
		t.Fatalf("expected team total 19.5, got %v", team.TotalPoints)
	}

	captain, _, _ := env.players.GetByID(ctx, "spl-fwd-01")
	if captain.TotalPoints != 6 || captain.WeekPoints() != 6 {
		t.Fatalf("unexpected captain points: total=%d week=%d", captain.TotalPoints, captain.WeekPoints())
	}

	_, err := env.scoring.RecordPerformance(ctx, inputs[0])
	if !errors.Is(err, ErrConflict) || !errors.Is(err, scoring.ErrAlreadyScored) {
		t.Fatalf("expected already scored conflict, got %v", err)
	}
	team, _, _ = env.teams.GetTeam(ctx, teamID)
	if team.TotalPoints != 19.5 {
		t.Fatalf("duplicate record changed team total to %v", team.TotalPoints)
	}
}

// failOnceScoringRepo fails the first accrual before it reaches storage.
type failOnceScoringRepo struct {
	scoring.Repository
	failed atomic.Bool
}

func (r *failOnceScoringRepo) RecordAndAccrue(ctx context.Context, record scoring.Record, credits []scoring.TeamCredit) error {
	if r.failed.CompareAndSwap(false, true) {
		return errors.New("transient db error")
	}
	return r.Repository.RecordAndAccrue(ctx, record, credits)
}

func TestScoringService_RecordPerformance_RetryAfterFailedAccrual(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	teamID := saveValidTeam(t, env, "user-1")
	finishMatch(t, env, "spl-r1-03")
	env.scoring.scoringRepo = &failOnceScoringRepo{Repository: env.records}

	in := RecordPerformanceInput{PlayerID: "spl-fwd-01", MatchID: "spl-r1-03", Goals: 1, MinutesPlayed: 90}
	if _, err := env.scoring.RecordPerformance(ctx, in); err == nil {
		t.Fatalf("expected first attempt to fail")
	}
	if _, ok, _ := env.records.Get(ctx, in.PlayerID, in.MatchID); ok {
		t.Fatalf("failed attempt must not leave a record")
	}

	got, err := env.scoring.RecordPerformance(ctx, in)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got.TeamsCredited != 1 {
		t.Fatalf("expected 1 team credited, got %d", got.TeamsCredited)
	}

	captain, _, _ := env.players.GetByID(ctx, in.PlayerID)
	team, _, _ := env.teams.GetTeam(ctx, teamID)
	if captain.TotalPoints != 6 || team.TotalPoints != 12 {
		t.Fatalf("expected player=6 team=12 after retry, got player=%d team=%v", captain.TotalPoints, team.TotalPoints)
	}
}

func TestScoringService_RecordPerformance_RejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	_, err := env.scoring.RecordPerformance(ctx, RecordPerformanceInput{PlayerID: "spl-fwd-01", MatchID: "spl-r1-03", MinutesPlayed: 90})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected unfinished match conflict, got %v", err)
	}

	finishMatch(t, env, "spl-r1-03")

	tests := []struct {
		name   string
		input  RecordPerformanceInput
		target error
	}{
		{name: "unknown match", input: RecordPerformanceInput{PlayerID: "spl-fwd-01", MatchID: "nope"}, target: ErrNotFound},
		{name: "unknown player", input: RecordPerformanceInput{PlayerID: "nope", MatchID: "spl-r1-03"}, target: ErrNotFound},
		{name: "club not in match", input: RecordPerformanceInput{PlayerID: "spl-gk-01", MatchID: "spl-r1-03"}, target: ErrInvalidInput},
		{name: "negative goals", input: RecordPerformanceInput{PlayerID: "spl-fwd-01", MatchID: "spl-r1-03", Goals: -1}, target: scoring.ErrInvalidPerformance},
		{name: "too many minutes", input: RecordPerformanceInput{PlayerID: "spl-fwd-01", MatchID: "spl-r1-03", MinutesPlayed: 130}, target: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.scoring.RecordPerformance(ctx, tt.input); !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestScoringService_RecordMatchPerformances_ContinuesPastFailures(t *testing.T) {
	env := newTestEnv(t)
	saveValidTeam(t, env, "user-1")
	finishMatch(t, env, "spl-r1-01")

	result, err := env.scoring.RecordMatchPerformances(t.Context(), "spl-r1-01", []RecordPerformanceInput{
		{PlayerID: "spl-gk-01", CleanSheet: true, MinutesPlayed: 90},
		{PlayerID: "spl-fwd-01", Goals: 1, MinutesPlayed: 90},
		{PlayerID: "spl-mid-02", Goals: 1, Assists: 1, MinutesPlayed: 75},
		{PlayerID: "spl-gk-01", MinutesPlayed: 90},
	})
	if err != nil {
		t.Fatalf("record batch: %v", err)
	}
	if result.ScoredCount != 2 || result.FailedCount != 2 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	wantStatus := []string{BatchStatusScored, BatchStatusFailed, BatchStatusScored, BatchStatusFailed}
	for i, row := range result.Rows {
		if row.Status != wantStatus[i] {
			t.Fatalf("row %d status: got=%s want=%s (%s)", i, row.Status, wantStatus[i], row.Message)
		}
	}
	if result.Rows[0].Points != 6 || result.Rows[2].Points != 9 {
		t.Fatalf("unexpected batch points: %+v", result.Rows)
	}
	if result.Rows[0].TeamsCredited != 1 {
		t.Fatalf("expected goalkeeper to credit one team, got %d", result.Rows[0].TeamsCredited)
	}

	records, _ := env.records.ListByMatch(t.Context(), "spl-r1-01")
	if len(records) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(records))
	}
}

func TestScoringService_PreviewPointsAndReset(t *testing.T) {
	env := newTestEnv(t)

	preview, err := env.scoring.PreviewPoints(" fwd ", scoring.Performance{Goals: 2, Assists: 1, YellowCards: 1, CleanSheet: true, MinutesPlayed: 90})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview.Points != 12 || len(preview.Breakdown) != 4 {
		t.Fatalf("unexpected preview: %+v", preview)
	}
	if _, err := env.scoring.PreviewPoints("striker", scoring.Performance{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown position, got %v", err)
	}

	if err := env.players.AddPoints(t.Context(), "spl-fwd-02", 8); err != nil {
		t.Fatalf("add points: %v", err)
	}
	if err := env.scoring.ResetCurrentWeek(t.Context()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	p, _, _ := env.players.GetByID(t.Context(), "spl-fwd-02")
	if p.WeekPoints() != 0 || p.TotalPoints != 8 {
		t.Fatalf("unexpected points after reset: week=%d total=%d", p.WeekPoints(), p.TotalPoints)
	}
}

type limitedSubmitter struct {
	accept int
	calls  int
}

func (p *limitedSubmitter) Submit(task func()) error {
	p.calls++
	if p.calls > p.accept {
		return errors.New("pool overloaded")
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		task()
	}()
	return nil
}

func TestRunTasks_WaitsForQueuedTasksWhenSubmitFails(t *testing.T) {
	var finished atomic.Int32
	pool := &limitedSubmitter{accept: 2}

	err := runTasks(pool, 5, func(int) { finished.Add(1) })
	if err == nil {
		t.Fatal("expected submit error")
	}
	if got := finished.Load(); got != 2 {
		t.Fatalf("expected both queued tasks done before return, got %d", got)
	}
	if pool.calls != 3 {
		t.Fatalf("expected submission to stop at the first failure, got %d calls", pool.calls)
	}
}
