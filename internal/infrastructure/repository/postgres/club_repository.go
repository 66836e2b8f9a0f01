package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spl-fantasy/internal/domain/club"
	qb "github.com/riskibarqy/spl-fantasy/internal/platform/querybuilder"
)

type clubTableModel struct {
	PublicID  string `db:"public_id"`
	Name      string `db:"name"`
	ShortName string `db:"short_name"`
	City      string `db:"city"`
}

var clubSelectColumns = []string{"public_id", "name", "short_name", "city"}

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select(clubSelectColumns...).From("clubs").OrderBy("name", "public_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	query, args, err := qb.Select(clubSelectColumns...).From("clubs").Where(qb.Eq("public_id", clubID)).ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	query, args, err := qb.InsertModel("clubs", clubTableModel{
		PublicID:  c.ID,
		Name:      c.Name,
		ShortName: c.ShortName,
		City:      c.City,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert club query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("club %s already exists", c.ID)
		}
		return fmt.Errorf("insert club: %w", err)
	}
	return nil
}

func (m clubTableModel) toDomain() club.Club {
	return club.Club{ID: m.PublicID, Name: m.Name, ShortName: m.ShortName, City: m.City}
}
