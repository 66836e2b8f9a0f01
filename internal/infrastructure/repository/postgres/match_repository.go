package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spl-fantasy/internal/domain/match"
	qb "github.com/riskibarqy/spl-fantasy/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListMatches(ctx context.Context, seasonID string) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("round", "kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetMatch(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) CreateMatch(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel("matches", matchTableModel{
		PublicID:   m.ID,
		SeasonID:   m.SeasonID,
		Round:      m.Round,
		HomeClubID: m.HomeClubID,
		AwayClubID: m.AwayClubID,
		KickoffAt:  m.KickoffAt.UTC(),
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Status:     string(m.Status),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("match %s already exists", m.ID)
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) FinishMatch(ctx context.Context, matchID string, homeScore, awayScore int) error {
	query, args, err := qb.Update("matches").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Set("status", string(match.StatusFinished)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build finish match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("finish match: %w", err)
	}
	return requireOneRow(result, "match "+matchID)
}

func (r *MatchRepository) ListSeasons(ctx context.Context) ([]match.Season, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").OrderBy("name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]match.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetSeason(ctx context.Context, seasonID string) (match.Season, bool, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		Where(qb.Eq("public_id", seasonID)).
		ToSQL()
	if err != nil {
		return match.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Season{}, false, nil
		}
		return match.Season{}, false, fmt.Errorf("get season: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) CreateSeason(ctx context.Context, s match.Season) error {
	return withTx(ctx, r.db, "create season", func(tx *sqlx.Tx) error {
		if s.IsActive {
			if _, err := tx.ExecContext(ctx, `UPDATE seasons SET is_active = FALSE WHERE is_active`); err != nil {
				return fmt.Errorf("deactivate seasons: %w", err)
			}
		}

		query, args, err := qb.InsertModel("seasons", seasonTableModel{
			PublicID: s.ID,
			Name:     s.Name,
			IsActive: s.IsActive,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert season query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err, "") {
				return fmt.Errorf("season %s already exists", s.ID)
			}
			return fmt.Errorf("insert season: %w", err)
		}
		return nil
	})
}
