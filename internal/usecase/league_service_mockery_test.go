package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
	fantasymock "github.com/riskibarqy/spl-fantasy/internal/mocks/domain/fantasy"
	leaguemock "github.com/riskibarqy/spl-fantasy/internal/mocks/domain/league"
	"github.com/riskibarqy/spl-fantasy/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLeagueService_Leaderboard_SkipsMembersWithoutTeamUsingMockery(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := fantasymock.NewRepository(t)
	service := NewLeagueService(leagueRepo, teamRepo, &sequenceIDGenerator{prefix: "lg"}, logging.NewNop())

	leagueID := "lg-damascus"
	leagueRepo.
		On("GetByID", mock.Anything, leagueID).
		Return(league.League{ID: leagueID, Visibility: league.VisibilityPublic}, true, nil).
		Once()
	leagueRepo.
		On("ListMembers", mock.Anything, leagueID).
		Return([]league.Member{
			{LeagueID: leagueID, UserID: "u1", TeamID: "t1"},
			{LeagueID: leagueID, UserID: "u2"},
			{LeagueID: leagueID, UserID: "u3", TeamID: "t3"},
		}, nil).
		Once()
	teamRepo.
		On("ListTeamsByIDs", mock.Anything, []string{"t1", "t3"}).
		Return([]fantasy.Team{
			{ID: "t1", Name: "Mezzeh", TotalPoints: 10},
			{ID: "t3", Name: "Bab Touma", TotalPoints: 10},
		}, nil).
		Once()

	got, err := service.Leaderboard(t.Context(), "u2", leagueID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "t3", got[0].TeamID, "ties break by team name")
	require.Equal(t, 1, got[0].Rank)
	require.Equal(t, 1, got[1].Rank)
	require.Equal(t, "u3", got[0].UserID)
}

func TestLeagueService_Leaderboard_PrivateRequiresMembershipUsingMockery(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := fantasymock.NewRepository(t)
	service := NewLeagueService(leagueRepo, teamRepo, &sequenceIDGenerator{prefix: "lg"}, logging.NewNop())

	leagueID := "lg-private"
	leagueRepo.
		On("GetByID", mock.Anything, leagueID).
		Return(league.League{ID: leagueID, Visibility: league.VisibilityPrivate, InviteCode: "ALEP2345"}, true, nil).
		Once()
	leagueRepo.
		On("ListMembers", mock.Anything, leagueID).
		Return([]league.Member{{LeagueID: leagueID, UserID: "insider", TeamID: "t1"}}, nil).
		Once()

	_, err := service.Leaderboard(t.Context(), "outsider", leagueID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestLeagueService_Create_DependencyErrorUsingMockery(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := fantasymock.NewRepository(t)
	service := NewLeagueService(leagueRepo, teamRepo, &sequenceIDGenerator{prefix: "lg"}, logging.NewNop())

	boom := errors.New("connection reset")
	leagueRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(l league.League) bool { return l.Name == "Aleppo Cup" })).
		Return(boom).
		Once()

	_, err := service.Create(t.Context(), CreateLeagueInput{UserID: "u1", Name: "Aleppo Cup"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
