package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spl-fantasy/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/spl-fantasy/internal/platform/querybuilder"
)

const seedConflictSuffix = "ON CONFLICT DO NOTHING"

// BootstrapSeed loads the built-in SPL catalogue into an empty database.
// It is a no-op once any club exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM clubs`); err != nil {
		return fmt.Errorf("count clubs for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return withTx(ctx, db, "bootstrap seed", func(tx *sqlx.Tx) error {
		var rows []seedRow
		for _, c := range memory.SeedClubs() {
			rows = append(rows, seedRow{table: "clubs", id: c.ID, model: clubTableModel{
				PublicID: c.ID, Name: c.Name, ShortName: c.ShortName, City: c.City,
			}})
		}
		for _, p := range memory.SeedPlayers() {
			rows = append(rows, seedRow{table: "players", id: p.ID, model: playerModelFrom(p)})
		}
		for _, s := range memory.SeedSeasons() {
			rows = append(rows, seedRow{table: "seasons", id: s.ID, model: seasonTableModel{
				PublicID: s.ID, Name: s.Name, IsActive: s.IsActive,
			}})
		}
		for _, m := range memory.SeedMatches() {
			rows = append(rows, seedRow{table: "matches", id: m.ID, model: matchTableModel{
				PublicID:   m.ID,
				SeasonID:   m.SeasonID,
				Round:      m.Round,
				HomeClubID: m.HomeClubID,
				AwayClubID: m.AwayClubID,
				KickoffAt:  m.KickoffAt.UTC(),
				Status:     string(m.Status),
			}})
		}
		for _, l := range memory.SeedLeagues() {
			rows = append(rows, seedRow{table: "leagues", id: l.ID, model: leagueTableModel{
				PublicID:    l.ID,
				Name:        l.Name,
				OwnerUserID: l.OwnerUserID,
				Visibility:  string(l.Visibility),
				InviteCode:  nullString(l.InviteCode),
				CreatedAt:   l.CreatedAt.UTC(),
			}})
		}

		for _, row := range rows {
			query, args, err := qb.InsertModel(row.table, row.model, seedConflictSuffix)
			if err != nil {
				return fmt.Errorf("build seed %s %s query: %w", row.table, row.id, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed %s %s: %w", row.table, row.id, err)
			}
		}
		return nil
	})
}

type seedRow struct {
	table string
	id    string
	model any
}
