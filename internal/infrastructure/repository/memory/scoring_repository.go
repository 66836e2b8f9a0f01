package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/spl-fantasy/internal/domain/scoring"
)

// ScoringRepository keeps performance records. Accrual reaches into the
// player and team stores it was built with, holding all three locks, so a
// record never exists without its points.
type ScoringRepository struct {
	mu      sync.RWMutex
	records map[string]scoring.Record
	players *PlayerRepository
	teams   *TeamRepository
}

func NewScoringRepository(players *PlayerRepository, teams *TeamRepository) *ScoringRepository {
	return &ScoringRepository{
		records: make(map[string]scoring.Record),
		players: players,
		teams:   teams,
	}
}

func (r *ScoringRepository) Create(_ context.Context, record scoring.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(record.PlayerID, record.MatchID)
	if _, exists := r.records[key]; exists {
		return fmt.Errorf("%w: player=%s match=%s", scoring.ErrAlreadyScored, record.PlayerID, record.MatchID)
	}
	r.records[key] = record
	return nil
}

// RecordAndAccrue validates every target before writing anything. Locks
// are taken in scoring, player, team order.
func (r *ScoringRepository) RecordAndAccrue(_ context.Context, record scoring.Record, credits []scoring.TeamCredit) error {
	if r.players == nil || r.teams == nil {
		return fmt.Errorf("scoring repository has no player or team store")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players.mu.Lock()
	defer r.players.mu.Unlock()
	r.teams.mu.Lock()
	defer r.teams.mu.Unlock()

	key := recordKey(record.PlayerID, record.MatchID)
	if _, exists := r.records[key]; exists {
		return fmt.Errorf("%w: player=%s match=%s", scoring.ErrAlreadyScored, record.PlayerID, record.MatchID)
	}
	p, ok := r.players.items[record.PlayerID]
	if !ok {
		return fmt.Errorf("player %s not found", record.PlayerID)
	}
	for _, c := range credits {
		if _, ok := r.teams.teams[c.TeamID]; !ok {
			return fmt.Errorf("team %s not found", c.TeamID)
		}
	}

	r.records[key] = record
	week := p.WeekPoints() + record.Points
	p.TotalPoints += record.Points
	p.CurrentWeekPoints = &week
	r.players.items[p.ID] = p
	for _, c := range credits {
		t := r.teams.teams[c.TeamID]
		t.TotalPoints += c.Points
		r.teams.teams[c.TeamID] = t
	}
	return nil
}

func (r *ScoringRepository) Get(_ context.Context, playerID, matchID string) (scoring.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[recordKey(playerID, matchID)]
	return record, ok, nil
}

func (r *ScoringRepository) ListByMatch(_ context.Context, matchID string) ([]scoring.Record, error) {
	out := r.filter(func(rec scoring.Record) bool { return rec.MatchID == matchID })
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *ScoringRepository) ListByPlayer(_ context.Context, playerID string) ([]scoring.Record, error) {
	out := r.filter(func(rec scoring.Record) bool { return rec.PlayerID == playerID })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}

func (r *ScoringRepository) filter(keep func(scoring.Record) bool) []scoring.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Record, 0)
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func recordKey(playerID, matchID string) string {
	return playerID + "::" + matchID
}
