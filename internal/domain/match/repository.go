package match

import "context"

type Repository interface {
	// ListMatches orders by round then kickoff.
	ListMatches(ctx context.Context, seasonID string) ([]Match, error)
	GetMatch(ctx context.Context, matchID string) (Match, bool, error)
	CreateMatch(ctx context.Context, m Match) error
	FinishMatch(ctx context.Context, matchID string, homeScore, awayScore int) error

	ListSeasons(ctx context.Context) ([]Season, error)
	GetSeason(ctx context.Context, seasonID string) (Season, bool, error)
	// CreateSeason deactivates every other season when s is active.
	CreateSeason(ctx context.Context, s Season) error
}
