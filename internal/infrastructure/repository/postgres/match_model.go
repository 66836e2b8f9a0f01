package postgres

import (
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/match"
)

type matchTableModel struct {
	PublicID   string    `db:"public_id"`
	SeasonID   string    `db:"season_public_id"`
	Round      int       `db:"round"`
	HomeClubID string    `db:"home_club_public_id"`
	AwayClubID string    `db:"away_club_public_id"`
	KickoffAt  time.Time `db:"kickoff_at"`
	HomeScore  *int      `db:"home_score"`
	AwayScore  *int      `db:"away_score"`
	Status     string    `db:"status"`
}

var matchSelectColumns = []string{
	"public_id",
	"season_public_id",
	"round",
	"home_club_public_id",
	"away_club_public_id",
	"kickoff_at",
	"home_score",
	"away_score",
	"status",
}

type seasonTableModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

var seasonSelectColumns = []string{"public_id", "name", "is_active"}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:         m.PublicID,
		SeasonID:   m.SeasonID,
		Round:      m.Round,
		HomeClubID: m.HomeClubID,
		AwayClubID: m.AwayClubID,
		KickoffAt:  m.KickoffAt.UTC(),
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Status:     match.Status(m.Status),
	}
}

func (m seasonTableModel) toDomain() match.Season {
	return match.Season{ID: m.PublicID, Name: m.Name, IsActive: m.IsActive}
}
