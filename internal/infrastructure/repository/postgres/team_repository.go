package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
	qb "github.com/riskibarqy/spl-fantasy/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetTeam(ctx context.Context, teamID string) (fantasy.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", teamID))
}

func (r *TeamRepository) GetTeamByUser(ctx context.Context, userID string) (fantasy.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("user_id", userID))
}

func (r *TeamRepository) ListTeamsByIDs(ctx context.Context, teamIDs []string) ([]fantasy.Team, error) {
	if len(teamIDs) == 0 {
		return []fantasy.Team{}, nil
	}

	query, args, err := qb.Select(teamSelectColumns...).From("fantasy_teams").
		Where(qb.InStrings("public_id", teamIDs)).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]fantasy.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// SaveTeam upserts the team row and replaces its links in one transaction.
// The stored total_points is never overwritten here.
func (r *TeamRepository) SaveTeam(ctx context.Context, team fantasy.Team, links []fantasy.TeamPlayerLink) error {
	return withTx(ctx, r.db, "save team", func(tx *sqlx.Tx) error {
		const upsertTeamQuery = `
INSERT INTO fantasy_teams (public_id, user_id, name, league_public_id, created_at, updated_at)
VALUES (:public_id, :user_id, :name, :league_public_id, :created_at, :updated_at)
ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    league_public_id = EXCLUDED.league_public_id,
    updated_at = EXCLUDED.updated_at`

		upsertSQL, upsertArgs, err := sqlx.Named(upsertTeamQuery, map[string]any{
			"public_id":        team.ID,
			"user_id":          team.UserID,
			"name":             team.Name,
			"league_public_id": team.LeagueID,
			"created_at":       team.CreatedAt.UTC(),
			"updated_at":       team.UpdatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind upsert team query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(upsertSQL), upsertArgs...); err != nil {
			if isUniqueViolation(err, teamUserUniqueConstraint) {
				return fmt.Errorf("%w: user=%s", fantasy.ErrTeamOwnerTaken, team.UserID)
			}
			return fmt.Errorf("upsert team: %w", err)
		}

		deleteSQL, deleteArgs, err := qb.DeleteFrom("fantasy_team_players").
			Where(qb.Eq("team_public_id", team.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete team links query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("delete team links: %w", err)
		}

		if len(links) == 0 {
			return nil
		}
		insert := qb.InsertInto("fantasy_team_players").Columns(
			"team_public_id",
			"player_public_id",
			"slot",
			"is_captain",
			"is_vice_captain",
			"is_starting_xi",
		)
		for slot, link := range links {
			insert = insert.Values(team.ID, link.PlayerID, slot, link.IsCaptain, link.IsViceCaptain, link.IsStartingXI)
		}
		insertSQL, insertArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert team links query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("insert team links: %w", err)
		}
		return nil
	})
}

func (r *TeamRepository) ListLinks(ctx context.Context, teamID string) ([]fantasy.TeamPlayerLink, error) {
	return r.listLinks(ctx, qb.Eq("team_public_id", teamID), "slot")
}

func (r *TeamRepository) ListLinksByPlayer(ctx context.Context, playerID string) ([]fantasy.TeamPlayerLink, error) {
	return r.listLinks(ctx, qb.Eq("player_public_id", playerID), "team_public_id")
}

func (r *TeamRepository) AddTeamPoints(ctx context.Context, teamID string, points float64) error {
	query, args, err := addTeamPointsQuery(teamID, points)
	if err != nil {
		return fmt.Errorf("build add team points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("add team points: %w", err)
	}
	return requireOneRow(result, "team "+teamID)
}

func addTeamPointsQuery(teamID string, points float64) (string, []any, error) {
	return qb.Update("fantasy_teams").
		SetExpr("total_points", "total_points + ?", points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
}

func (r *TeamRepository) getOne(ctx context.Context, cond qb.Condition) (fantasy.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("fantasy_teams").Where(cond).ToSQL()
	if err != nil {
		return fantasy.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Team{}, false, nil
		}
		return fantasy.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) listLinks(ctx context.Context, cond qb.Condition, orderBy string) ([]fantasy.TeamPlayerLink, error) {
	query, args, err := qb.Select(teamPlayerSelectColumns...).From("fantasy_team_players").
		Where(cond).
		OrderBy(orderBy).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team links query: %w", err)
	}

	var rows []teamPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team links: %w", err)
	}

	out := make([]fantasy.TeamPlayerLink, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
