package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/spl-fantasy/internal/domain/club"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
	"github.com/riskibarqy/spl-fantasy/internal/domain/scoring"
	basecache "github.com/riskibarqy/spl-fantasy/internal/platform/cache"
)

const (
	playerKeyPrefix = "player:"
	clubKeyPrefix   = "club:"
)

// PlayerRepository is a read-through cache over a player.Repository. Every
// write drops all cached player reads since points feed list ordering.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, playerKeyPrefix+"list:"+filterKey(filter), func(ctx context.Context) ([]player.Player, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return clonePlayers(items), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, playerKeyPrefix+"id:"+playerID, func(ctx context.Context) (cachedPlayer, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedPlayer{}, err
		}
		return cachedPlayer{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return clonePlayer(cached.value), cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)

	items, err := basecache.Load(ctx, r.cache, playerKeyPrefix+"ids:"+strings.Join(ids, ","), func(ctx context.Context) ([]player.Player, error) {
		return r.next.GetByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return clonePlayers(items), nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	defer r.invalidate(ctx)
	return r.next.Create(ctx, p)
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	defer r.invalidate(ctx)
	return r.next.Update(ctx, p)
}

func (r *PlayerRepository) AddPoints(ctx context.Context, playerID string, points int) error {
	defer r.invalidate(ctx)
	return r.next.AddPoints(ctx, playerID, points)
}

func (r *PlayerRepository) ResetWeekPoints(ctx context.Context) error {
	defer r.invalidate(ctx)
	return r.next.ResetWeekPoints(ctx)
}

func (r *PlayerRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, playerKeyPrefix)
}

type cachedPlayer struct {
	value  player.Player
	exists bool
}

// ScoringRepository passes records straight through and drops cached
// player reads once an accrual has moved player totals.
type ScoringRepository struct {
	scoring.Repository
	cache *basecache.Store
}

func NewScoringRepository(next scoring.Repository, cache *basecache.Store) *ScoringRepository {
	return &ScoringRepository{Repository: next, cache: cache}
}

func (r *ScoringRepository) RecordAndAccrue(ctx context.Context, record scoring.Record, credits []scoring.TeamCredit) error {
	defer r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return r.Repository.RecordAndAccrue(ctx, record, credits)
}

// ClubRepository is a read-through cache over a club.Repository.
type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	items, err := basecache.Load(ctx, r.cache, clubKeyPrefix+"list", func(ctx context.Context) ([]club.Club, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]club.Club(nil), items...), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, clubKeyPrefix+"id:"+clubID, func(ctx context.Context) (cachedClub, error) {
		item, exists, err := r.next.GetByID(ctx, clubID)
		if err != nil {
			return cachedClub{}, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	defer r.cache.DeletePrefix(ctx, clubKeyPrefix)
	return r.next.Create(ctx, c)
}

type cachedClub struct {
	value  club.Club
	exists bool
}

func filterKey(f player.Filter) string {
	return strings.Join([]string{
		f.Position.String(),
		f.ClubID,
		strconv.FormatInt(f.MaxPrice, 10),
		strings.ToLower(f.NameQuery),
		string(f.SortBy),
		strconv.FormatBool(f.Descending),
		strconv.Itoa(f.Limit),
	}, "|")
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, p := range items {
		out = append(out, clonePlayer(p))
	}
	return out
}

func clonePlayer(p player.Player) player.Player {
	if p.CurrentWeekPoints != nil {
		v := *p.CurrentWeekPoints
		p.CurrentWeekPoints = &v
	}
	return p
}
