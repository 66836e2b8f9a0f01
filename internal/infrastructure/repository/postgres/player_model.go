package postgres

import "github.com/riskibarqy/spl-fantasy/internal/domain/player"

type playerTableModel struct {
	PublicID          string `db:"public_id"`
	ClubID            string `db:"club_public_id"`
	Name              string `db:"name"`
	Position          string `db:"position"`
	Price             int64  `db:"price"`
	TotalPoints       int    `db:"total_points"`
	CurrentWeekPoints *int   `db:"current_week_points"`
	ImageURL          string `db:"image_url"`
}

var playerSelectColumns = []string{
	"public_id",
	"club_public_id",
	"name",
	"position",
	"price",
	"total_points",
	"current_week_points",
	"image_url",
}

func playerModelFrom(p player.Player) playerTableModel {
	return playerTableModel{
		PublicID:          p.ID,
		ClubID:            p.ClubID,
		Name:              p.Name,
		Position:          p.Position.String(),
		Price:             p.Price,
		TotalPoints:       p.TotalPoints,
		CurrentWeekPoints: p.CurrentWeekPoints,
		ImageURL:          p.ImageURL,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:                m.PublicID,
		ClubID:            m.ClubID,
		Name:              m.Name,
		Position:          player.Position(m.Position),
		Price:             m.Price,
		TotalPoints:       m.TotalPoints,
		CurrentWeekPoints: m.CurrentWeekPoints,
		ImageURL:          m.ImageURL,
	}
}
