package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
	idgen "github.com/riskibarqy/spl-fantasy/internal/platform/id"
	"github.com/riskibarqy/spl-fantasy/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeLength   = 8
	inviteCodeAttempts = 3
)

type CreateLeagueInput struct {
	UserID     string
	Name       string
	Visibility string
}

// JoinLeagueInput joins by invite code when one is given, otherwise by the
// id of a public league.
type JoinLeagueInput struct {
	UserID     string
	LeagueID   string
	InviteCode string
}

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   fantasy.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
	inviteCode func() (string, error)
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo fantasy.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
		inviteCode: func() (string, error) { return generateInviteCode(inviteCodeLength) },
	}
}

func (s *LeagueService) Create(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)

	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create", attribute.String("user_id", input.UserID))
	defer span.End()

	if input.UserID == "" {
		return league.League{}, recordSpanError(span, fmt.Errorf("%w: user id is required", ErrUnauthorized))
	}
	if input.Name == "" {
		return league.League{}, recordSpanError(span, fmt.Errorf("%w: league name is required", ErrInvalidInput))
	}
	visibility, err := league.ParseVisibility(input.Visibility)
	if err != nil {
		return league.League{}, recordSpanError(span, fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, recordSpanError(span, fmt.Errorf("generate league id: %w", err))
	}

	now := s.now().UTC()
	lg := league.League{
		ID:          leagueID,
		Name:        input.Name,
		OwnerUserID: input.UserID,
		Visibility:  visibility,
		CreatedAt:   now,
	}

	for attempt := 1; ; attempt++ {
		if lg.IsPrivate() {
			if lg.InviteCode, err = s.inviteCode(); err != nil {
				return league.League{}, recordSpanError(span, err)
			}
		}
		if err := lg.Validate(); err != nil {
			return league.League{}, recordSpanError(span, fmt.Errorf("%w: %v", ErrInvalidInput, err))
		}

		err = s.leagueRepo.Create(ctx, lg)
		if err == nil {
			break
		}
		if !errors.Is(err, league.ErrInviteCodeTaken) || attempt >= inviteCodeAttempts {
			if errors.Is(err, league.ErrInviteCodeTaken) {
				err = fmt.Errorf("%w: %w", ErrConflict, err)
			}
			return league.League{}, recordSpanError(span, fmt.Errorf("create league: %w", err))
		}
		s.logger.WarnContext(ctx, "invite code collision, retrying", "league_id", lg.ID, "attempt", attempt)
	}

	if err := s.addMember(ctx, lg.ID, input.UserID, now); err != nil {
		return league.League{}, recordSpanError(span, err)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", lg.ID,
		"owner_user_id", lg.OwnerUserID,
		"visibility", string(lg.Visibility),
	)
	return lg, nil
}

func (s *LeagueService) Join(ctx context.Context, input JoinLeagueInput) (league.League, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.InviteCode = strings.ToUpper(strings.TrimSpace(input.InviteCode))

	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Join", attribute.String("user_id", input.UserID))
	defer span.End()

	if input.UserID == "" {
		return league.League{}, recordSpanError(span, fmt.Errorf("%w: user id is required", ErrUnauthorized))
	}

	var (
		lg     league.League
		exists bool
		err    error
	)
	switch {
	case input.InviteCode != "":
		lg, exists, err = s.leagueRepo.GetByInviteCode(ctx, input.InviteCode)
	case input.LeagueID != "":
		lg, exists, err = s.leagueRepo.GetByID(ctx, input.LeagueID)
	default:
		return league.League{}, recordSpanError(span, fmt.Errorf("%w: league id or invite code is required", ErrInvalidInput))
	}
	if err != nil {
		return league.League{}, recordSpanError(span, fmt.Errorf("get league: %w", err))
	}
	if !exists {
		return league.League{}, recordSpanError(span, fmt.Errorf("%w: league not found", ErrNotFound))
	}
	if lg.IsPrivate() && input.InviteCode == "" {
		return league.League{}, recordSpanError(span, fmt.Errorf("%w: league %s requires an invite code", ErrForbidden, lg.ID))
	}

	if _, already, err := s.leagueRepo.GetMember(ctx, lg.ID, input.UserID); err != nil {
		return league.League{}, recordSpanError(span, fmt.Errorf("get league member: %w", err))
	} else if already {
		return lg, nil
	}

	if err := s.addMember(ctx, lg.ID, input.UserID, s.now().UTC()); err != nil {
		return league.League{}, recordSpanError(span, err)
	}
	s.logger.InfoContext(ctx, "league joined", "league_id", lg.ID, "user_id", input.UserID)
	return lg, nil
}

func (s *LeagueService) ListMine(ctx context.Context, userID string) ([]league.League, error) {
	userID = strings.TrimSpace(userID)
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMine", attribute.String("user_id", userID))
	defer span.End()

	if userID == "" {
		return nil, recordSpanError(span, fmt.Errorf("%w: user id is required", ErrUnauthorized))
	}
	leagues, err := s.leagueRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, recordSpanError(span, fmt.Errorf("list leagues by user: %w", err))
	}
	return leagues, nil
}

// Leaderboard ranks member teams by their stored point totals. Private
// leagues are only visible to members.
func (s *LeagueService) Leaderboard(ctx context.Context, userID, leagueID string) ([]league.Standing, error) {
	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Leaderboard", attribute.String("league_id", leagueID))
	defer span.End()

	if leagueID == "" {
		return nil, recordSpanError(span, fmt.Errorf("%w: league id is required", ErrInvalidInput))
	}

	var (
		lg      league.League
		exists  bool
		members []league.Member
	)
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		lg, exists, err = s.leagueRepo.GetByID(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("get league: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		members, err = s.leagueRepo.ListMembers(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("list league members: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, recordSpanError(span, err)
	}
	if !exists {
		return nil, recordSpanError(span, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID))
	}

	isMember := false
	teamIDs := make([]string, 0, len(members))
	for _, m := range members {
		if m.UserID == userID {
			isMember = true
		}
		if m.TeamID != "" {
			teamIDs = append(teamIDs, m.TeamID)
		}
	}
	if lg.IsPrivate() && !isMember {
		return nil, recordSpanError(span, fmt.Errorf("%w: not a member of league %s", ErrForbidden, lg.ID))
	}

	teams, err := s.teamRepo.ListTeamsByIDs(ctx, teamIDs)
	if err != nil {
		return nil, recordSpanError(span, fmt.Errorf("list member teams: %w", err))
	}
	teamByID := make(map[string]fantasy.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	standings := make([]league.Standing, 0, len(members))
	for _, m := range members {
		t, ok := teamByID[m.TeamID]
		if !ok {
			continue
		}
		standings = append(standings, league.Standing{
			LeagueID: lg.ID,
			UserID:   m.UserID,
			TeamID:   t.ID,
			TeamName: t.Name,
			Points:   t.TotalPoints,
		})
	}
	return league.Rank(standings), nil
}

func (s *LeagueService) addMember(ctx context.Context, leagueID, userID string, joinedAt time.Time) error {
	member := league.Member{LeagueID: leagueID, UserID: userID, JoinedAt: joinedAt}
	team, hasTeam, err := s.teamRepo.GetTeamByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("get team by user: %w", err)
	}
	if hasTeam {
		member.TeamID = team.ID
	}
	if err := s.leagueRepo.UpsertMember(ctx, member); err != nil {
		return fmt.Errorf("upsert league member: %w", err)
	}
	return nil
}

func generateInviteCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invite code length must be positive")
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for invite code: %w", err)
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(out), nil
}
