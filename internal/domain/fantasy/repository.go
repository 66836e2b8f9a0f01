package fantasy

import (
	"context"
	"errors"
)

// ErrTeamOwnerTaken is returned by SaveTeam when the user already owns a
// different team.
var ErrTeamOwnerTaken = errors.New("user already owns another team")

// Repository describes team persistence needs from use cases. A user owns
// at most one team.
type Repository interface {
	GetTeam(ctx context.Context, teamID string) (Team, bool, error)
	GetTeamByUser(ctx context.Context, userID string) (Team, bool, error)
	ListTeamsByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	// SaveTeam upserts the team and replaces its links in one atomic step.
	// It returns ErrTeamOwnerTaken when team.UserID owns another team.
	SaveTeam(ctx context.Context, team Team, links []TeamPlayerLink) error
	ListLinks(ctx context.Context, teamID string) ([]TeamPlayerLink, error)
	ListLinksByPlayer(ctx context.Context, playerID string) ([]TeamPlayerLink, error)
	AddTeamPoints(ctx context.Context, teamID string, points float64) error
}
