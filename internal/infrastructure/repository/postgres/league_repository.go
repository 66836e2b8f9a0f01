package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
	qb "github.com/riskibarqy/spl-fantasy/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", leagueID))
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, inviteCode string) (league.League, bool, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return league.League{}, false, nil
	}
	return r.getOne(ctx, qb.Eq("invite_code", code))
}

func (r *LeagueRepository) ListByUser(ctx context.Context, userID string) ([]league.League, error) {
	const query = `
SELECT l.public_id, l.name, l.owner_user_id, l.visibility, l.invite_code, l.created_at
FROM leagues l
JOIN league_members m ON m.league_public_id = l.public_id
WHERE m.user_id = $1
ORDER BY l.name, l.public_id`

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("select leagues by user: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	query, args, err := qb.InsertModel("leagues", leagueTableModel{
		PublicID:    l.ID,
		Name:        l.Name,
		OwnerUserID: l.OwnerUserID,
		Visibility:  string(l.Visibility),
		InviteCode:  nullString(strings.ToUpper(strings.TrimSpace(l.InviteCode))),
		CreatedAt:   l.CreatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, leagueInviteUniqueConstraint) {
			return fmt.Errorf("%w: %s", league.ErrInviteCodeTaken, l.InviteCode)
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("league %s already exists", l.ID)
		}
		return fmt.Errorf("insert league: %w", err)
	}
	return nil
}

func (r *LeagueRepository) GetMember(ctx context.Context, leagueID, userID string) (league.Member, bool, error) {
	query, args, err := qb.Select(leagueMemberSelectColumns...).From("league_members").
		Where(qb.Eq("league_public_id", leagueID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return league.Member{}, false, fmt.Errorf("build get league member query: %w", err)
	}

	var row leagueMemberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Member{}, false, nil
		}
		return league.Member{}, false, fmt.Errorf("get league member: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	query, args, err := qb.Select(leagueMemberSelectColumns...).From("league_members").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("joined_at", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league members query: %w", err)
	}

	var rows []leagueMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league members: %w", err)
	}

	out := make([]league.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// UpsertMember keeps joined_at from the first insert.
func (r *LeagueRepository) UpsertMember(ctx context.Context, m league.Member) error {
	query, args, err := qb.InsertModel("league_members", leagueMemberTableModel{
		LeagueID: m.LeagueID,
		UserID:   m.UserID,
		TeamID:   nullString(m.TeamID),
		JoinedAt: m.JoinedAt.UTC(),
	}, `ON CONFLICT (league_public_id, user_id) DO UPDATE SET team_public_id = EXCLUDED.team_public_id`)
	if err != nil {
		return fmt.Errorf("build upsert league member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league member: %w", err)
	}
	return nil
}

func (r *LeagueRepository) getOne(ctx context.Context, cond qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select(leagueSelectColumns...).From("leagues").Where(cond).ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}
	return row.toDomain(), true, nil
}
