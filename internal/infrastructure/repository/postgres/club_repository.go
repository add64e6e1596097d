package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	qb "github.com/riskibarqy/transfer-market/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("*").From("clubs").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID int64) (club.Club, bool, error) {
	return r.getOne(ctx, "get club by id", qb.Eq("id", clubID))
}

func (r *ClubRepository) GetByManager(ctx context.Context, userID string) (club.Club, bool, error) {
	return r.getOne(ctx, "get club by manager", qb.Eq("manager_user_id", userID))
}

func (r *ClubRepository) getOne(ctx context.Context, op string, cond qb.Condition) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(cond).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return clubFromRow(row), true, nil
}
