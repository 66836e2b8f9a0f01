package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/spl-fantasy/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
	seasons map[string]match.Season
}

func NewMatchRepository(seasons []match.Season, matches []match.Match) *MatchRepository {
	r := &MatchRepository{
		matches: make(map[string]match.Match, len(matches)),
		seasons: make(map[string]match.Season, len(seasons)),
	}
	for _, s := range seasons {
		r.seasons[s.ID] = s
	}
	for _, m := range matches {
		r.matches[m.ID] = cloneMatch(m)
	}
	return r
}

func (r *MatchRepository) ListMatches(_ context.Context, seasonID string) ([]match.Match, error) {
	r.mu.RLock()
	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.SeasonID == seasonID {
			out = append(out, cloneMatch(m))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) GetMatch(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) CreateMatch(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[m.ID]; exists {
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.matches[m.ID] = cloneMatch(m)
	return nil
}

func (r *MatchRepository) FinishMatch(_ context.Context, matchID string, homeScore, awayScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.matches[matchID]
	if !exists {
		return fmt.Errorf("match %s not found", matchID)
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.Status = match.StatusFinished
	r.matches[matchID] = m
	return nil
}

func (r *MatchRepository) ListSeasons(_ context.Context) ([]match.Season, error) {
	r.mu.RLock()
	out := make([]match.Season, 0, len(r.seasons))
	for _, s := range r.seasons {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MatchRepository) GetSeason(_ context.Context, seasonID string) (match.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.seasons[seasonID]
	return s, ok, nil
}

func (r *MatchRepository) CreateSeason(_ context.Context, season match.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.seasons[season.ID]; exists {
		return fmt.Errorf("season %s already exists", season.ID)
	}
	if season.IsActive {
		for id, s := range r.seasons {
			s.IsActive = false
			r.seasons[id] = s
		}
	}
	r.seasons[season.ID] = season
	return nil
}

func cloneMatch(m match.Match) match.Match {
	if m.HomeScore != nil {
		v := *m.HomeScore
		m.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		m.AwayScore = &v
	}
	return m
}
