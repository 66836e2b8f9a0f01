package postgres

import (
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/scoring"
)

const performanceUniqueConstraint = "uq_performance_player_match"

type performanceTableModel struct {
	PlayerID      string    `db:"player_public_id"`
	MatchID       string    `db:"match_public_id"`
	Goals         int       `db:"goals"`
	Assists       int       `db:"assists"`
	YellowCards   int       `db:"yellow_cards"`
	RedCards      int       `db:"red_cards"`
	CleanSheet    bool      `db:"clean_sheet"`
	MinutesPlayed int       `db:"minutes_played"`
	Points        int       `db:"points"`
	CreatedAt     time.Time `db:"created_at"`
}

var performanceSelectColumns = []string{
	"player_public_id",
	"match_public_id",
	"goals",
	"assists",
	"yellow_cards",
	"red_cards",
	"clean_sheet",
	"minutes_played",
	"points",
	"created_at",
}

func performanceModelFrom(r scoring.Record) performanceTableModel {
	return performanceTableModel{
		PlayerID:      r.PlayerID,
		MatchID:       r.MatchID,
		Goals:         r.Goals,
		Assists:       r.Assists,
		YellowCards:   r.YellowCards,
		RedCards:      r.RedCards,
		CleanSheet:    r.CleanSheet,
		MinutesPlayed: r.MinutesPlayed,
		Points:        r.Points,
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

func (m performanceTableModel) toDomain() scoring.Record {
	return scoring.Record{
		PlayerID: m.PlayerID,
		MatchID:  m.MatchID,
		Performance: scoring.Performance{
			Goals:         m.Goals,
			Assists:       m.Assists,
			YellowCards:   m.YellowCards,
			RedCards:      m.RedCards,
			CleanSheet:    m.CleanSheet,
			MinutesPlayed: m.MinutesPlayed,
		},
		Points:    m.Points,
		CreatedAt: m.CreatedAt.UTC(),
	}
}
