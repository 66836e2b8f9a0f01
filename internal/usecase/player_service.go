package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

const maxPlayerListLimit = 200

// PlayerFilterInput holds raw query values for listing players.
type PlayerFilterInput struct {
	Position   string
	ClubID     string
	MaxPrice   int64
	Query      string
	SortBy     string
	Descending bool
	Limit      int
}

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

func (s *PlayerService) List(ctx context.Context, input PlayerFilterInput) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	filter, err := input.toFilter()
	if err != nil {
		return nil, recordSpanError(span, err)
	}

	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, recordSpanError(span, fmt.Errorf("list players: %w", err))
	}
	return players, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, recordSpanError(span, fmt.Errorf("%w: player id is required", ErrInvalidInput))
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, recordSpanError(span, fmt.Errorf("get player by id: %w", err))
	}
	if !exists {
		return player.Player{}, recordSpanError(span, fmt.Errorf("%w: player=%s", ErrNotFound, playerID))
	}
	return p, nil
}

func (in PlayerFilterInput) toFilter() (player.Filter, error) {
	filter := player.Filter{
		ClubID:     strings.TrimSpace(in.ClubID),
		MaxPrice:   in.MaxPrice,
		NameQuery:  strings.TrimSpace(in.Query),
		Descending: in.Descending,
		Limit:      in.Limit,
	}

	if raw := strings.TrimSpace(in.Position); raw != "" {
		pos, err := player.ParsePosition(raw)
		if err != nil {
			return player.Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		filter.Position = pos
	}
	if filter.MaxPrice < 0 {
		return player.Filter{}, fmt.Errorf("%w: max price must not be negative", ErrInvalidInput)
	}

	switch field := player.SortField(strings.ToLower(strings.TrimSpace(in.SortBy))); field {
	case "":
		filter.SortBy = player.SortByName
	case player.SortByName, player.SortByPrice, player.SortByPoints:
		filter.SortBy = field
	default:
		return player.Filter{}, fmt.Errorf("%w: unsupported sort field %q", ErrInvalidInput, in.SortBy)
	}

	switch {
	case filter.Limit < 0:
		return player.Filter{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	case filter.Limit == 0 || filter.Limit > maxPlayerListLimit:
		filter.Limit = maxPlayerListLimit
	}
	return filter, nil
}
