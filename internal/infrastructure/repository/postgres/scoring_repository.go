package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spl-fantasy/internal/domain/scoring"
	qb "github.com/riskibarqy/spl-fantasy/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) Create(ctx context.Context, record scoring.Record) error {
	query, args, err := qb.InsertModel("performance_records", performanceModelFrom(record), "")
	if err != nil {
		return fmt.Errorf("build insert performance query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, performanceUniqueConstraint) {
			return fmt.Errorf("%w: player=%s match=%s", scoring.ErrAlreadyScored, record.PlayerID, record.MatchID)
		}
		return fmt.Errorf("insert performance: %w", err)
	}
	return nil
}

// RecordAndAccrue inserts the record and moves the player and team
// counters in one transaction. Any failure rolls all of it back, so a
// retry starts from a clean slate.
func (r *ScoringRepository) RecordAndAccrue(ctx context.Context, record scoring.Record, credits []scoring.TeamCredit) error {
	insertSQL, insertArgs, err := qb.InsertModel("performance_records", performanceModelFrom(record), "")
	if err != nil {
		return fmt.Errorf("build insert performance query: %w", err)
	}
	playerSQL, playerArgs, err := addPlayerPointsQuery(record.PlayerID, record.Points)
	if err != nil {
		return fmt.Errorf("build add player points query: %w", err)
	}

	return withTx(ctx, r.db, "record and accrue", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			if isUniqueViolation(err, performanceUniqueConstraint) {
				return fmt.Errorf("%w: player=%s match=%s", scoring.ErrAlreadyScored, record.PlayerID, record.MatchID)
			}
			return fmt.Errorf("insert performance: %w", err)
		}

		result, err := tx.ExecContext(ctx, playerSQL, playerArgs...)
		if err != nil {
			return fmt.Errorf("add player points: %w", err)
		}
		if err := requireOneRow(result, "player "+record.PlayerID); err != nil {
			return err
		}

		for _, c := range credits {
			teamSQL, teamArgs, err := addTeamPointsQuery(c.TeamID, c.Points)
			if err != nil {
				return fmt.Errorf("build add team points query: %w", err)
			}
			result, err := tx.ExecContext(ctx, teamSQL, teamArgs...)
			if err != nil {
				return fmt.Errorf("add team points team=%s: %w", c.TeamID, err)
			}
			if err := requireOneRow(result, "team "+c.TeamID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ScoringRepository) Get(ctx context.Context, playerID, matchID string) (scoring.Record, bool, error) {
	query, args, err := qb.Select(performanceSelectColumns...).From("performance_records").
		Where(qb.Eq("player_public_id", playerID), qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return scoring.Record{}, false, fmt.Errorf("build get performance query: %w", err)
	}

	var row performanceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Record{}, false, nil
		}
		return scoring.Record{}, false, fmt.Errorf("get performance: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ScoringRepository) ListByMatch(ctx context.Context, matchID string) ([]scoring.Record, error) {
	return r.list(ctx, qb.Eq("match_public_id", matchID), "player_public_id")
}

func (r *ScoringRepository) ListByPlayer(ctx context.Context, playerID string) ([]scoring.Record, error) {
	return r.list(ctx, qb.Eq("player_public_id", playerID), "created_at", "match_public_id")
}

func (r *ScoringRepository) list(ctx context.Context, cond qb.Condition, orderBy ...string) ([]scoring.Record, error) {
	query, args, err := qb.Select(performanceSelectColumns...).From("performance_records").
		Where(cond).
		OrderBy(orderBy...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list performances query: %w", err)
	}

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select performances: %w", err)
	}

	out := make([]scoring.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
