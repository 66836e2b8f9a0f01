package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
	"github.com/riskibarqy/spl-fantasy/internal/infrastructure/repository/memory"
)

func TestSquadService_SaveTeam_CreateThenUpdate(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.squad.SaveTeam(t.Context(), SaveTeamInput{
		UserID:    "user-1",
		Name:      "  Qasioun XI ",
		LeagueID:  memory.LeagueIDOverall,
		Selection: validSelection(),
	})
	if err != nil {
		t.Fatalf("save team create failed: %v", err)
	}
	if created.Team.ID != "team-001" || created.Team.Name != "Qasioun XI" {
		t.Fatalf("unexpected team: %+v", created.Team)
	}
	if created.Summary.TotalCost != 990 || created.Summary.RemainingBudget != 10 {
		t.Fatalf("unexpected summary: cost=%d remaining=%d", created.Summary.TotalCost, created.Summary.RemainingBudget)
	}

	member, ok, _ := env.leagues.GetMember(t.Context(), memory.LeagueIDOverall, "user-1")
	if !ok || member.TeamID != created.Team.ID {
		t.Fatalf("expected implicit public league membership, got %+v ok=%v", member, ok)
	}

	env.squad.now = func() time.Time { return testNow.Add(time.Hour) }
	sel := validSelection()
	sel.CaptainID, sel.ViceCaptainID = "spl-mid-01", "spl-fwd-01"
	updated, err := env.squad.SaveTeam(t.Context(), SaveTeamInput{
		UserID:    "user-1",
		Name:      "Qasioun Reborn",
		LeagueID:  memory.LeagueIDOverall,
		Selection: sel,
	})
	if err != nil {
		t.Fatalf("save team update failed: %v", err)
	}
	if updated.Team.ID != created.Team.ID {
		t.Fatalf("expected same team id, got %s", updated.Team.ID)
	}
	if !updated.Team.CreatedAt.Equal(testNow) || !updated.Team.UpdatedAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("unexpected timestamps: %+v", updated.Team)
	}

	mine, err := env.squad.GetMyTeam(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get my team: %v", err)
	}
	if mine.Selection.CaptainID != "spl-mid-01" || mine.Selection.Len() != 15 {
		t.Fatalf("unexpected stored selection: captain=%s len=%d", mine.Selection.CaptainID, mine.Selection.Len())
	}
	if !mine.Summary.Validation.IsValid {
		t.Fatalf("expected stored squad valid, got %v", mine.Summary.Validation.Errors)
	}
}

func TestSquadService_SaveTeam_RejectsInvalidSquadBeforeWriting(t *testing.T) {
	env := newTestEnv(t)

	sel := validSelection()
	sel.Players[1].IsStartingXI = nil // twelfth starter
	sel.ViceCaptainID = sel.CaptainID

	_, err := env.squad.SaveTeam(t.Context(), SaveTeamInput{UserID: "user-1", Selection: sel})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var verr *SquadValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *SquadValidationError, got %T", err)
	}
	want := []string{
		"starting XI must have exactly 11 players (has 12)",
		"captain and vice-captain must be different players",
		"team name is required",
		"a league must be selected",
	}
	if len(verr.Violations) != len(want) {
		t.Fatalf("unexpected violations: %v", verr.Violations)
	}
	for i := range want {
		if verr.Violations[i] != want[i] {
			t.Fatalf("violation %d: got=%q want=%q", i, verr.Violations[i], want[i])
		}
	}

	if _, exists, _ := env.teams.GetTeamByUser(t.Context(), "user-1"); exists {
		t.Fatalf("expected no team persisted")
	}
}

func TestSquadService_SaveTeam_PrivateLeagueRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	private := league.League{ID: "lg-private", Name: "Barada Friends", OwnerUserID: "owner", Visibility: league.VisibilityPrivate, InviteCode: "BRDA2345"}
	if err := env.leagues.Create(ctx, private); err != nil {
		t.Fatalf("seed private league: %v", err)
	}

	_, err := env.squad.SaveTeam(ctx, SaveTeamInput{UserID: "user-1", Name: "Outsiders", LeagueID: private.ID, Selection: validSelection()})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = env.squad.SaveTeam(ctx, SaveTeamInput{UserID: "user-1", Name: "Ghosts", LeagueID: "missing", Selection: validSelection()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// staleOwnerLookup hides existing teams from GetTeamByUser, as when two
// first saves for one user race past the lookup.
type staleOwnerLookup struct {
	fantasy.Repository
}

func (staleOwnerLookup) GetTeamByUser(context.Context, string) (fantasy.Team, bool, error) {
	return fantasy.Team{}, false, nil
}

func TestSquadService_SaveTeam_ConcurrentFirstSaveIsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	saveValidTeam(t, env, "user-1")

	env.squad.teamRepo = staleOwnerLookup{Repository: env.teams}
	_, err := env.squad.SaveTeam(ctx, SaveTeamInput{
		UserID:    "user-1",
		Name:      "Second Try",
		LeagueID:  memory.LeagueIDOverall,
		Selection: validSelection(),
	})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, fantasy.ErrTeamOwnerTaken) {
		t.Fatalf("expected owner conflict, got %v", err)
	}
}

func TestSquadService_Preview_ReportsDuplicatesAndUnknownPlayers(t *testing.T) {
	env := newTestEnv(t)

	sel := validSelection()
	sel.Players = append(sel.Players, SquadEntryInput{PlayerID: "spl-fwd-01", IsStartingXI: boolPtr(false)})
	view, err := env.squad.Preview(t.Context(), sel)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	wantFirst := "squad must have at most 15 players (has 16)"
	if view.Summary.Validation.IsValid || view.Summary.Validation.Errors[0] != wantFirst {
		t.Fatalf("unexpected preview validation: %v", view.Summary.Validation.Errors)
	}
	if view.Summary.Validation.Errors[1] != "player spl-fwd-01 is selected more than once" {
		t.Fatalf("expected duplicate violation, got %v", view.Summary.Validation.Errors)
	}

	sel = validSelection()
	sel.Players[0].PlayerID = "spl-gk-99"
	if _, err := env.squad.Preview(t.Context(), sel); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown player, got %v", err)
	}
}

func TestSquadService_GetMyTeam_NotFound(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.squad.GetMyTeam(t.Context(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := env.squad.GetMyTeam(t.Context(), " "); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
