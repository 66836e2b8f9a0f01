package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
)

type LeagueRepository struct {
	mu       sync.RWMutex
	leagues  map[string]league.League
	byInvite map[string]string
	members  map[string]map[string]league.Member
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	r := &LeagueRepository{
		leagues:  make(map[string]league.League, len(leagues)),
		byInvite: make(map[string]string),
		members:  make(map[string]map[string]league.Member),
	}
	for _, l := range leagues {
		r.leagues[l.ID] = l
		if l.InviteCode != "" {
			r.byInvite[normalizeInviteCode(l.InviteCode)] = l.ID
		}
	}
	return r
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leagues[leagueID]
	return l, ok, nil
}

func (r *LeagueRepository) GetByInviteCode(_ context.Context, inviteCode string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byInvite[normalizeInviteCode(inviteCode)]
	if !ok {
		return league.League{}, false, nil
	}
	return r.leagues[id], true, nil
}

func (r *LeagueRepository) ListByUser(_ context.Context, userID string) ([]league.League, error) {
	r.mu.RLock()
	out := make([]league.League, 0)
	for leagueID, members := range r.members {
		if _, ok := members[userID]; ok {
			out = append(out, r.leagues[leagueID])
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leagues[l.ID]; exists {
		return fmt.Errorf("league %s already exists", l.ID)
	}
	code := normalizeInviteCode(l.InviteCode)
	if code != "" {
		if _, taken := r.byInvite[code]; taken {
			return fmt.Errorf("%w: %s", league.ErrInviteCodeTaken, code)
		}
		r.byInvite[code] = l.ID
	}
	r.leagues[l.ID] = l
	return nil
}

func (r *LeagueRepository) GetMember(_ context.Context, leagueID, userID string) (league.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[leagueID][userID]
	return m, ok, nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Member, error) {
	r.mu.RLock()
	out := make([]league.Member, 0, len(r.members[leagueID]))
	for _, m := range r.members[leagueID] {
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *LeagueRepository) UpsertMember(_ context.Context, m league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leagues[m.LeagueID]; !ok {
		return fmt.Errorf("league %s not found", m.LeagueID)
	}
	members, ok := r.members[m.LeagueID]
	if !ok {
		members = make(map[string]league.Member)
		r.members[m.LeagueID] = members
	}
	if existing, ok := members[m.UserID]; ok {
		m.JoinedAt = existing.JoinedAt
	}
	members[m.UserID] = m
	return nil
}

func normalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
