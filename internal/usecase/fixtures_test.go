package usecase

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/spl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/spl-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/spl-fantasy/internal/platform/logging"
)

type sequenceIDGenerator struct {
	prefix string
	n      atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%03d", g.prefix, g.n.Add(1)), nil
}

type testEnv struct {
	players *memory.PlayerRepository
	clubs   *memory.ClubRepository
	matches *memory.MatchRepository
	records *memory.ScoringRepository
	teams   *memory.TeamRepository
	leagues *memory.LeagueRepository

	squad    *SquadService
	scoring  *ScoringService
	league   *LeagueService
	admin    *AdminService
	fixtures *FixtureService
}

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logging.NewNop()
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	teams := memory.NewTeamRepository()
	env := &testEnv{
		players: players,
		clubs:   memory.NewClubRepository(memory.SeedClubs()),
		matches: memory.NewMatchRepository(memory.SeedSeasons(), memory.SeedMatches()),
		records: memory.NewScoringRepository(players, teams),
		teams:   teams,
		leagues: memory.NewLeagueRepository(memory.SeedLeagues()),
	}

	env.squad = NewSquadService(env.players, env.teams, env.leagues, fantasy.FlexibleRules(), &sequenceIDGenerator{prefix: "team"}, logger)
	env.squad.now = func() time.Time { return testNow }
	env.scoring = NewScoringService(env.matches, env.players, env.records, env.teams, scoring.DefaultRules(), 2, logger)
	env.scoring.now = func() time.Time { return testNow }
	env.league = NewLeagueService(env.leagues, env.teams, &sequenceIDGenerator{prefix: "league"}, logger)
	env.league.now = func() time.Time { return testNow }
	env.admin = NewAdminService(env.clubs, env.players, env.matches, &sequenceIDGenerator{prefix: "adm"}, logger)
	env.fixtures = NewFixtureService(env.clubs, env.matches)
	return env
}

func boolPtr(v bool) *bool {
	return &v
}

// validSelection is a 2/5/5/3 squad costing 99.0 with spl-fwd-01 as captain
// and spl-mid-01 as vice. spl-gk-02, spl-def-04, spl-def-05 and spl-mid-05
// sit on the bench.
func validSelection() SquadSelectionInput {
	bench := map[string]bool{"spl-gk-02": true, "spl-def-04": true, "spl-def-05": true, "spl-mid-05": true}
	ids := []string{
		"spl-gk-01", "spl-gk-02",
		"spl-def-01", "spl-def-02", "spl-def-03", "spl-def-04", "spl-def-05",
		"spl-mid-01", "spl-mid-02", "spl-mid-03", "spl-mid-04", "spl-mid-05",
		"spl-fwd-01", "spl-fwd-02", "spl-fwd-03",
	}
	entries := make([]SquadEntryInput, 0, len(ids))
	for _, id := range ids {
		entry := SquadEntryInput{PlayerID: id}
		if bench[id] {
			entry.IsStartingXI = boolPtr(false)
		}
		entries = append(entries, entry)
	}
	return SquadSelectionInput{Players: entries, CaptainID: "spl-fwd-01", ViceCaptainID: "spl-mid-01"}
}
