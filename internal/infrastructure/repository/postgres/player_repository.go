package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
	qb "github.com/riskibarqy/spl-fantasy/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	var conds []qb.Condition
	if filter.Position != "" {
		conds = append(conds, qb.Eq("position", filter.Position.String()))
	}
	if filter.ClubID != "" {
		conds = append(conds, qb.Eq("club_public_id", filter.ClubID))
	}
	if filter.MaxPrice > 0 {
		conds = append(conds, qb.Lte("price", filter.MaxPrice))
	}
	if filter.NameQuery != "" {
		conds = append(conds, qb.ILike("name", filter.NameQuery))
	}

	builder := qb.Select(playerSelectColumns...).From("players").
		Where(conds...).
		OrderBy(playerOrderBy(filter.SortBy, filter.Descending)...)
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.InStrings("public_id", playerIDs)).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertModel("players", playerModelFrom(p), "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("player %s already exists", p.ID)
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	query, args, err := qb.Update("players").
		Set("club_public_id", p.ClubID).
		Set("name", p.Name).
		Set("position", p.Position.String()).
		Set("price", p.Price).
		Set("image_url", p.ImageURL).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return requireOneRow(result, "player "+p.ID)
}

// AddPoints increments both counters in one statement so concurrent
// scoring never loses an update.
func (r *PlayerRepository) AddPoints(ctx context.Context, playerID string, points int) error {
	query, args, err := addPlayerPointsQuery(playerID, points)
	if err != nil {
		return fmt.Errorf("build add player points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("add player points: %w", err)
	}
	return requireOneRow(result, "player "+playerID)
}

func addPlayerPointsQuery(playerID string, points int) (string, []any, error) {
	return qb.Update("players").
		SetExpr("total_points", "total_points + ?", points).
		SetExpr("current_week_points", "COALESCE(current_week_points, 0) + ?", points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
}

func (r *PlayerRepository) ResetWeekPoints(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE players SET current_week_points = 0, updated_at = NOW()`); err != nil {
		return fmt.Errorf("reset week points: %w", err)
	}
	return nil
}

// playerOrderBy matches the memory repository: the direction applies to
// the tie-breakers too.
func playerOrderBy(field player.SortField, desc bool) []string {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	switch field {
	case player.SortByPrice:
		return []string{"price " + dir, "name " + dir, "public_id " + dir}
	case player.SortByPoints:
		return []string{"total_points " + dir, "name " + dir, "public_id " + dir}
	default:
		return []string{"name " + dir, "public_id " + dir}
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
