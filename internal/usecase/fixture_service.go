package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/spl-fantasy/internal/domain/club"
	"github.com/riskibarqy/spl-fantasy/internal/domain/match"
)

// FixtureService serves the read-only club and match catalogue.
type FixtureService struct {
	clubRepo  club.Repository
	matchRepo match.Repository
}

func NewFixtureService(clubRepo club.Repository, matchRepo match.Repository) *FixtureService {
	return &FixtureService{
		clubRepo:  clubRepo,
		matchRepo: matchRepo,
	}
}

func (s *FixtureService) ListClubs(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListClubs")
	defer span.End()

	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, recordSpanError(span, fmt.Errorf("list clubs: %w", err))
	}
	return clubs, nil
}

// ListMatches lists one season's matches, defaulting to the active season.
func (s *FixtureService) ListMatches(ctx context.Context, seasonID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListMatches")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		season, err := s.activeSeason(ctx)
		if err != nil {
			return nil, recordSpanError(span, err)
		}
		seasonID = season.ID
	} else {
		_, exists, err := s.matchRepo.GetSeason(ctx, seasonID)
		if err != nil {
			return nil, recordSpanError(span, fmt.Errorf("get season: %w", err))
		}
		if !exists {
			return nil, recordSpanError(span, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID))
		}
	}

	matches, err := s.matchRepo.ListMatches(ctx, seasonID)
	if err != nil {
		return nil, recordSpanError(span, fmt.Errorf("list matches by season: %w", err))
	}
	return matches, nil
}

func (s *FixtureService) activeSeason(ctx context.Context) (match.Season, error) {
	seasons, err := s.matchRepo.ListSeasons(ctx)
	if err != nil {
		return match.Season{}, fmt.Errorf("list seasons: %w", err)
	}
	for _, season := range seasons {
		if season.IsActive {
			return season, nil
		}
	}
	return match.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
}
