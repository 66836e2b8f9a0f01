package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
)

// TeamRepository keeps teams and their player links. SaveTeam swaps the
// whole link set under one write lock.
type TeamRepository struct {
	mu     sync.RWMutex
	teams  map[string]fantasy.Team
	byUser map[string]string
	links  map[string][]fantasy.TeamPlayerLink
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		teams:  make(map[string]fantasy.Team),
		byUser: make(map[string]string),
		links:  make(map[string][]fantasy.TeamPlayerLink),
	}
}

func (r *TeamRepository) GetTeam(_ context.Context, teamID string) (fantasy.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) GetTeamByUser(_ context.Context, userID string) (fantasy.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[userID]
	if !ok {
		return fantasy.Team{}, false, nil
	}
	return r.teams[id], true, nil
}

func (r *TeamRepository) ListTeamsByIDs(_ context.Context, teamIDs []string) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		if t, ok := r.teams[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TeamRepository) SaveTeam(_ context.Context, team fantasy.Team, links []fantasy.TeamPlayerLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existingID, ok := r.byUser[team.UserID]; ok && existingID != team.ID {
		return fmt.Errorf("%w: user=%s team=%s", fantasy.ErrTeamOwnerTaken, team.UserID, existingID)
	}
	if current, ok := r.teams[team.ID]; ok {
		// The stored counter only moves through AddTeamPoints.
		team.TotalPoints = current.TotalPoints
	}

	r.teams[team.ID] = team
	r.byUser[team.UserID] = team.ID
	r.links[team.ID] = append([]fantasy.TeamPlayerLink(nil), links...)
	return nil
}

func (r *TeamRepository) ListLinks(_ context.Context, teamID string) ([]fantasy.TeamPlayerLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]fantasy.TeamPlayerLink(nil), r.links[teamID]...), nil
}

func (r *TeamRepository) ListLinksByPlayer(_ context.Context, playerID string) ([]fantasy.TeamPlayerLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.TeamPlayerLink, 0)
	for _, links := range r.links {
		for _, link := range links {
			if link.PlayerID == playerID {
				out = append(out, link)
			}
		}
	}
	return out, nil
}

func (r *TeamRepository) AddTeamPoints(_ context.Context, teamID string, points float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teams[teamID]
	if !ok {
		return fmt.Errorf("team %s not found", teamID)
	}
	t.TotalPoints += points
	r.teams[teamID] = t
	return nil
}
