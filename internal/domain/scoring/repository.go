package scoring

import "context"

// TeamCredit is the share of a record's points owed to one fantasy team.
type TeamCredit struct {
	TeamID string
	Points float64
}

// Repository stores scored performance records.
type Repository interface {
	// Create returns ErrAlreadyScored when (PlayerID, MatchID) exists.
	Create(ctx context.Context, record Record) error
	// RecordAndAccrue stores record, adds its points to the player's
	// totals and applies every credit as one unit: either all of it lands
	// or none of it does. A duplicate returns ErrAlreadyScored.
	RecordAndAccrue(ctx context.Context, record Record, credits []TeamCredit) error
	Get(ctx context.Context, playerID, matchID string) (Record, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Record, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Record, error)
}
