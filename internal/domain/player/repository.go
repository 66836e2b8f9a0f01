package player

import "context"

// SortField selects the ordering of List results.
type SortField string

const (
	SortByName   SortField = "name"
	SortByPrice  SortField = "price"
	SortByPoints SortField = "points"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Position   Position
	ClubID     string
	MaxPrice   int64
	NameQuery  string
	SortBy     SortField
	Descending bool
	Limit      int
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Create(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) error
	// AddPoints increments TotalPoints and CurrentWeekPoints atomically.
	AddPoints(ctx context.Context, playerID string, points int) error
	ResetWeekPoints(ctx context.Context) error
}
