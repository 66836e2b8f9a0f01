package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
)

const leagueInviteUniqueConstraint = "uq_leagues_invite_code"

type leagueTableModel struct {
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	OwnerUserID string         `db:"owner_user_id"`
	Visibility  string         `db:"visibility"`
	InviteCode  sql.NullString `db:"invite_code"`
	CreatedAt   time.Time      `db:"created_at"`
}

var leagueSelectColumns = []string{
	"public_id",
	"name",
	"owner_user_id",
	"visibility",
	"invite_code",
	"created_at",
}

type leagueMemberTableModel struct {
	LeagueID string         `db:"league_public_id"`
	UserID   string         `db:"user_id"`
	TeamID   sql.NullString `db:"team_public_id"`
	JoinedAt time.Time      `db:"joined_at"`
}

var leagueMemberSelectColumns = []string{
	"league_public_id",
	"user_id",
	"team_public_id",
	"joined_at",
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:          m.PublicID,
		Name:        m.Name,
		OwnerUserID: m.OwnerUserID,
		Visibility:  league.Visibility(m.Visibility),
		InviteCode:  m.InviteCode.String,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func (m leagueMemberTableModel) toDomain() league.Member {
	return league.Member{
		LeagueID: m.LeagueID,
		UserID:   m.UserID,
		TeamID:   m.TeamID.String,
		JoinedAt: m.JoinedAt.UTC(),
	}
}
