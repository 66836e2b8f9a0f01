package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
	idgen "github.com/riskibarqy/spl-fantasy/internal/platform/id"
	"github.com/riskibarqy/spl-fantasy/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// SquadEntryInput is one requested pick. A nil IsStartingXI means starting.
type SquadEntryInput struct {
	PlayerID     string
	IsStartingXI *bool
}

// SquadSelectionInput is a full squad as submitted by a client.
type SquadSelectionInput struct {
	Players       []SquadEntryInput
	CaptainID     string
	ViceCaptainID string
}

type SaveTeamInput struct {
	UserID    string
	Name      string
	LeagueID  string
	Selection SquadSelectionInput
}

// SquadView is a selection with its derived aggregates and validation.
type SquadView struct {
	Selection fantasy.Selection
	Summary   fantasy.Summary
}

type MyTeam struct {
	Team fantasy.Team
	SquadView
}

type SquadService struct {
	playerRepo player.Repository
	teamRepo   fantasy.Repository
	leagueRepo league.Repository
	rules      fantasy.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewSquadService(
	playerRepo player.Repository,
	teamRepo fantasy.Repository,
	leagueRepo league.Repository,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SquadService) Rules() fantasy.Rules {
	return s.rules
}

// Preview resolves the requested players and reports aggregates and every
// rule violation without persisting anything.
func (s *SquadService) Preview(ctx context.Context, input SquadSelectionInput) (SquadView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Preview")
	defer span.End()

	sel, err := s.buildSelection(ctx, input)
	if err != nil {
		return SquadView{}, recordSpanError(span, err)
	}

	return SquadView{Selection: sel, Summary: fantasy.Summarize(sel, s.rules)}, nil
}

// SaveTeam validates the squad before any write and then replaces the
// user's team and links in one repository call.
func (s *SquadService) SaveTeam(ctx context.Context, input SaveTeamInput) (MyTeam, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.LeagueID = strings.TrimSpace(input.LeagueID)

	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.SaveTeam",
		attribute.String("user_id", input.UserID),
		attribute.String("league_id", input.LeagueID),
	)
	defer span.End()

	if input.UserID == "" {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("%w: user id is required", ErrUnauthorized))
	}

	sel, err := s.buildSelection(ctx, input.Selection)
	if err != nil {
		return MyTeam{}, recordSpanError(span, err)
	}

	result := fantasy.ValidateForSave(sel, s.rules, fantasy.SaveDetails{Name: input.Name, LeagueID: input.LeagueID})
	if !result.IsValid {
		s.logger.InfoContext(ctx, "squad save rejected",
			"user_id", input.UserID,
			"violations", len(result.Errors),
		)
		return MyTeam{}, recordSpanError(span, &SquadValidationError{Violations: result.Errors})
	}

	lg, err := s.requireLeague(ctx, input.LeagueID)
	if err != nil {
		return MyTeam{}, recordSpanError(span, err)
	}
	member, isMember, err := s.leagueRepo.GetMember(ctx, lg.ID, input.UserID)
	if err != nil {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("get league member: %w", err))
	}
	if !isMember && lg.IsPrivate() {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("%w: join private league %s with its invite code first", ErrForbidden, lg.ID))
	}

	now := s.now().UTC()
	existing, exists, err := s.teamRepo.GetTeamByUser(ctx, input.UserID)
	if err != nil {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("get team by user: %w", err))
	}

	team := existing
	if !exists {
		teamID, err := s.idGen.NewID()
		if err != nil {
			return MyTeam{}, recordSpanError(span, fmt.Errorf("generate team id: %w", err))
		}
		team = fantasy.Team{ID: teamID, UserID: input.UserID, CreatedAt: now}
	}
	team.Name = input.Name
	team.LeagueID = lg.ID
	team.UpdatedAt = now

	if err := team.Validate(); err != nil {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}

	links := fantasy.BuildLinks(team.ID, sel)
	if err := s.teamRepo.SaveTeam(ctx, team, links); err != nil {
		if errors.Is(err, fantasy.ErrTeamOwnerTaken) {
			return MyTeam{}, recordSpanError(span, fmt.Errorf("%w: %w", ErrConflict, err))
		}
		return MyTeam{}, recordSpanError(span, fmt.Errorf("save team: %w", err))
	}

	joinedAt := now
	if isMember {
		joinedAt = member.JoinedAt
	}
	if err := s.leagueRepo.UpsertMember(ctx, league.Member{
		LeagueID: lg.ID,
		UserID:   input.UserID,
		TeamID:   team.ID,
		JoinedAt: joinedAt,
	}); err != nil {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("upsert league member: %w", err))
	}

	s.logger.InfoContext(ctx, "team saved",
		"user_id", input.UserID,
		"team_id", team.ID,
		"league_id", lg.ID,
		"player_count", sel.Len(),
		"created", !exists,
	)

	return MyTeam{
		Team:      team,
		SquadView: SquadView{Selection: sel, Summary: fantasy.Summarize(sel, s.rules)},
	}, nil
}

func (s *SquadService) GetMyTeam(ctx context.Context, userID string) (MyTeam, error) {
	userID = strings.TrimSpace(userID)
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetMyTeam", attribute.String("user_id", userID))
	defer span.End()

	if userID == "" {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("%w: user id is required", ErrUnauthorized))
	}

	team, exists, err := s.teamRepo.GetTeamByUser(ctx, userID)
	if err != nil {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("get team by user: %w", err))
	}
	if !exists {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("%w: team for user=%s", ErrNotFound, userID))
	}

	links, err := s.teamRepo.ListLinks(ctx, team.ID)
	if err != nil {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("list team links: %w", err))
	}

	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return MyTeam{}, recordSpanError(span, fmt.Errorf("get team players: %w", err))
	}
	if len(players) != len(ids) {
		s.logger.WarnContext(ctx, "team references missing players",
			"team_id", team.ID,
			"links", len(ids),
			"players", len(players),
		)
	}

	sel := fantasy.SelectionFromLinks(links, playersByID(players))
	return MyTeam{
		Team:      team,
		SquadView: SquadView{Selection: sel, Summary: fantasy.Summarize(sel, s.rules)},
	}, nil
}

// buildSelection keeps duplicates and oversize input so the validator can
// report them alongside every other violation.
func (s *SquadService) buildSelection(ctx context.Context, input SquadSelectionInput) (fantasy.Selection, error) {
	if len(input.Players) == 0 {
		return fantasy.Selection{}, fmt.Errorf("%w: at least one player is required", ErrInvalidInput)
	}

	requested := make([]string, len(input.Players))
	ids := make([]string, 0, len(input.Players))
	seen := make(map[string]struct{}, len(input.Players))
	for i, entry := range input.Players {
		id := strings.TrimSpace(entry.PlayerID)
		if id == "" {
			return fantasy.Selection{}, fmt.Errorf("%w: player id at index %d is empty", ErrInvalidInput, i)
		}
		requested[i] = id
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fantasy.Selection{}, fmt.Errorf("get players by ids: %w", err)
	}
	byID := playersByID(players)

	sel := fantasy.Selection{
		Entries:       make([]fantasy.Entry, 0, len(input.Players)),
		CaptainID:     strings.TrimSpace(input.CaptainID),
		ViceCaptainID: strings.TrimSpace(input.ViceCaptainID),
	}
	for i, entry := range input.Players {
		p, ok := byID[requested[i]]
		if !ok {
			return fantasy.Selection{}, fmt.Errorf("%w: player %s not found", ErrInvalidInput, requested[i])
		}
		starting := true
		if entry.IsStartingXI != nil {
			starting = *entry.IsStartingXI
		}
		sel.Entries = append(sel.Entries, fantasy.Entry{Player: p, IsStartingXI: starting})
	}

	return sel, nil
}

func (s *SquadService) requireLeague(ctx context.Context, leagueID string) (league.League, error) {
	lg, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return lg, nil
}

func playersByID(players []player.Player) map[string]player.Player {
	out := make(map[string]player.Player, len(players))
	for _, p := range players {
		out[p.ID] = p
	}
	return out
}
