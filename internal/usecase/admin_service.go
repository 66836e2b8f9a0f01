package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/spl-fantasy/internal/domain/club"
	"github.com/riskibarqy/spl-fantasy/internal/domain/match"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
	idgen "github.com/riskibarqy/spl-fantasy/internal/platform/id"
	"github.com/riskibarqy/spl-fantasy/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type CreateClubInput struct {
	Name      string
	ShortName string
	City      string
}

type CreatePlayerInput struct {
	ClubID   string
	Name     string
	Position string
	Price    int64
	ImageURL string
}

type UpdatePlayerInput struct {
	PlayerID string
	CreatePlayerInput
}

type CreateSeasonInput struct {
	Name     string
	IsActive bool
}

type CreateMatchInput struct {
	SeasonID   string
	Round      int
	HomeClubID string
	AwayClubID string
	KickoffAt  time.Time
}

type FinishMatchInput struct {
	MatchID   string
	HomeScore int
	AwayScore int
}

// AdminService owns catalogue writes. Callers must already be authorized
// as admins.
type AdminService struct {
	clubRepo   club.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewAdminService(
	clubRepo club.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AdminService{
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

func (s *AdminService) CreateClub(ctx context.Context, input CreateClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateClub")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return club.Club{}, recordSpanError(span, fmt.Errorf("generate club id: %w", err))
	}
	c := club.Club{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		ShortName: strings.ToUpper(strings.TrimSpace(input.ShortName)),
		City:      strings.TrimSpace(input.City),
	}
	if err := c.Validate(); err != nil {
		return club.Club{}, recordSpanError(span, fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	if err := s.clubRepo.Create(ctx, c); err != nil {
		return club.Club{}, recordSpanError(span, fmt.Errorf("create club: %w", err))
	}

	s.logger.InfoContext(ctx, "club created", "club_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *AdminService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreatePlayer")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, recordSpanError(span, fmt.Errorf("generate player id: %w", err))
	}
	p, err := s.playerFromInput(ctx, input)
	if err != nil {
		return player.Player{}, recordSpanError(span, err)
	}
	p.ID = id

	if err := p.Validate(); err != nil {
		return player.Player{}, recordSpanError(span, fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, recordSpanError(span, fmt.Errorf("create player: %w", err))
	}

	s.logger.InfoContext(ctx, "player created", "player_id", p.ID, "club_id", p.ClubID, "position", p.Position.String())
	return p, nil
}

// UpdatePlayer replaces the editable fields; accrued points are kept.
func (s *AdminService) UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.UpdatePlayer", attribute.String("player_id", input.PlayerID))
	defer span.End()

	if input.PlayerID == "" {
		return player.Player{}, recordSpanError(span, fmt.Errorf("%w: player id is required", ErrInvalidInput))
	}
	current, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, recordSpanError(span, fmt.Errorf("get player: %w", err))
	}
	if !exists {
		return player.Player{}, recordSpanError(span, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID))
	}

	next, err := s.playerFromInput(ctx, input.CreatePlayerInput)
	if err != nil {
		return player.Player{}, recordSpanError(span, err)
	}
	next.ID = current.ID
	next.TotalPoints = current.TotalPoints
	next.CurrentWeekPoints = current.CurrentWeekPoints

	if err := next.Validate(); err != nil {
		return player.Player{}, recordSpanError(span, fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	if err := s.playerRepo.Update(ctx, next); err != nil {
		return player.Player{}, recordSpanError(span, fmt.Errorf("update player: %w", err))
	}

	s.logger.InfoContext(ctx, "player updated", "player_id", next.ID)
	return next, nil
}

func (s *AdminService) CreateSeason(ctx context.Context, input CreateSeasonInput) (match.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateSeason")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return match.Season{}, recordSpanError(span, fmt.Errorf("%w: season name is required", ErrInvalidInput))
	}
	id, err := s.idGen.NewID()
	if err != nil {
		return match.Season{}, recordSpanError(span, fmt.Errorf("generate season id: %w", err))
	}

	season := match.Season{ID: id, Name: name, IsActive: input.IsActive}
	if err := s.matchRepo.CreateSeason(ctx, season); err != nil {
		return match.Season{}, recordSpanError(span, fmt.Errorf("create season: %w", err))
	}

	s.logger.InfoContext(ctx, "season created", "season_id", season.ID, "active", season.IsActive)
	return season, nil
}

func (s *AdminService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreateMatch")
	defer span.End()

	input.SeasonID = strings.TrimSpace(input.SeasonID)
	input.HomeClubID = strings.TrimSpace(input.HomeClubID)
	input.AwayClubID = strings.TrimSpace(input.AwayClubID)
	if input.SeasonID == "" {
		return match.Match{}, recordSpanError(span, fmt.Errorf("%w: season id is required", ErrInvalidInput))
	}

	if _, exists, err := s.matchRepo.GetSeason(ctx, input.SeasonID); err != nil {
		return match.Match{}, recordSpanError(span, fmt.Errorf("get season: %w", err))
	} else if !exists {
		return match.Match{}, recordSpanError(span, fmt.Errorf("%w: season=%s", ErrNotFound, input.SeasonID))
	}
	for _, clubID := range []string{input.HomeClubID, input.AwayClubID} {
		if err := s.requireClub(ctx, clubID); err != nil {
			return match.Match{}, recordSpanError(span, err)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, recordSpanError(span, fmt.Errorf("generate match id: %w", err))
	}
	m := match.Match{
		ID:         id,
		SeasonID:   input.SeasonID,
		Round:      input.Round,
		HomeClubID: input.HomeClubID,
		AwayClubID: input.AwayClubID,
		KickoffAt:  input.KickoffAt.UTC(),
		Status:     match.StatusScheduled,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, recordSpanError(span, fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	if err := s.matchRepo.CreateMatch(ctx, m); err != nil {
		return match.Match{}, recordSpanError(span, fmt.Errorf("create match: %w", err))
	}

	s.logger.InfoContext(ctx, "match created", "match_id", m.ID, "round", m.Round)
	return m, nil
}

// FinishMatch records the final score once; a finished match cannot be
// finished again.
func (s *AdminService) FinishMatch(ctx context.Context, input FinishMatchInput) (match.Match, error) {
	input.MatchID = strings.TrimSpace(input.MatchID)
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.FinishMatch", attribute.String("match_id", input.MatchID))
	defer span.End()

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return match.Match{}, recordSpanError(span, fmt.Errorf("%w: scores must not be negative", ErrInvalidInput))
	}
	m, exists, err := s.matchRepo.GetMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, recordSpanError(span, fmt.Errorf("get match: %w", err))
	}
	if !exists {
		return match.Match{}, recordSpanError(span, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID))
	}
	if m.IsFinished() {
		return match.Match{}, recordSpanError(span, fmt.Errorf("%w: match %s already finished", ErrConflict, m.ID))
	}

	if err := s.matchRepo.FinishMatch(ctx, m.ID, input.HomeScore, input.AwayScore); err != nil {
		return match.Match{}, recordSpanError(span, fmt.Errorf("finish match: %w", err))
	}
	home, away := input.HomeScore, input.AwayScore
	m.HomeScore = &home
	m.AwayScore = &away
	m.Status = match.StatusFinished

	s.logger.InfoContext(ctx, "match finished", "match_id", m.ID, "home_score", home, "away_score", away)
	return m, nil
}

func (s *AdminService) playerFromInput(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	position, err := player.ParsePosition(input.Position)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	clubID := strings.TrimSpace(input.ClubID)
	if err := s.requireClub(ctx, clubID); err != nil {
		return player.Player{}, err
	}
	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) > 120 {
		return player.Player{}, fmt.Errorf("%w: player name is too long", ErrInvalidInput)
	}

	return player.Player{
		ClubID:   clubID,
		Name:     name,
		Position: position,
		Price:    input.Price,
		ImageURL: strings.TrimSpace(input.ImageURL),
	}, nil
}

func (s *AdminService) requireClub(ctx context.Context, clubID string) error {
	if clubID == "" {
		return fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	_, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return fmt.Errorf("get club: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}
	return nil
}
