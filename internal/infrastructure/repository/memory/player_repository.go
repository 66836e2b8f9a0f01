package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		items[p.ID] = clonePlayer(p)
	}
	return &PlayerRepository{items: items}
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.mu.RLock()
	out := make([]player.Player, 0, len(r.items))
	query := strings.ToLower(filter.NameQuery)
	for _, p := range r.items {
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		if filter.ClubID != "" && p.ClubID != filter.ClubID {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, clonePlayer(p))
	}
	r.mu.RUnlock()

	sortPlayers(out, filter.SortBy, filter.Descending)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.items[id]
		if !ok {
			continue
		}
		out = append(out, clonePlayer(p))
	}
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.items[p.ID] = clonePlayer(p)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; !exists {
		return fmt.Errorf("player %s not found", p.ID)
	}
	r.items[p.ID] = clonePlayer(p)
	return nil
}

func (r *PlayerRepository) AddPoints(_ context.Context, playerID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.items[playerID]
	if !exists {
		return fmt.Errorf("player %s not found", playerID)
	}
	week := p.WeekPoints() + points
	p.TotalPoints += points
	p.CurrentWeekPoints = &week
	r.items[playerID] = p
	return nil
}

func (r *PlayerRepository) ResetWeekPoints(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		zero := 0
		p.CurrentWeekPoints = &zero
		r.items[id] = p
	}
	return nil
}

func sortPlayers(players []player.Player, field player.SortField, desc bool) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		var cmp int
		switch field {
		case player.SortByPrice:
			cmp = compareInt64(a.Price, b.Price)
		case player.SortByPoints:
			cmp = compareInt64(int64(a.TotalPoints), int64(b.TotalPoints))
		}
		if cmp == 0 {
			cmp = strings.Compare(a.Name, b.Name)
		}
		if cmp == 0 {
			cmp = strings.Compare(a.ID, b.ID)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func clonePlayer(p player.Player) player.Player {
	if p.CurrentWeekPoints != nil {
		week := *p.CurrentWeekPoints
		p.CurrentWeekPoints = &week
	}
	return p
}
