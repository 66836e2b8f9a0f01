package postgres

import (
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
)

const teamUserUniqueConstraint = "uq_fantasy_teams_user"

type teamTableModel struct {
	PublicID    string    `db:"public_id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	LeagueID    string    `db:"league_public_id"`
	TotalPoints float64   `db:"total_points"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

var teamSelectColumns = []string{
	"public_id",
	"user_id",
	"name",
	"league_public_id",
	"total_points",
	"created_at",
	"updated_at",
}

type teamPlayerTableModel struct {
	TeamID        string `db:"team_public_id"`
	PlayerID      string `db:"player_public_id"`
	IsCaptain     bool   `db:"is_captain"`
	IsViceCaptain bool   `db:"is_vice_captain"`
	IsStartingXI  bool   `db:"is_starting_xi"`
}

var teamPlayerSelectColumns = []string{
	"team_public_id",
	"player_public_id",
	"is_captain",
	"is_vice_captain",
	"is_starting_xi",
}

func (m teamTableModel) toDomain() fantasy.Team {
	return fantasy.Team{
		ID:          m.PublicID,
		UserID:      m.UserID,
		Name:        m.Name,
		LeagueID:    m.LeagueID,
		TotalPoints: m.TotalPoints,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (m teamPlayerTableModel) toDomain() fantasy.TeamPlayerLink {
	return fantasy.TeamPlayerLink{
		TeamID:        m.TeamID,
		PlayerID:      m.PlayerID,
		IsCaptain:     m.IsCaptain,
		IsViceCaptain: m.IsViceCaptain,
		IsStartingXI:  m.IsStartingXI,
	}
}
