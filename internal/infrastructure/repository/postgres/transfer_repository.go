package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	qb "github.com/riskibarqy/transfer-market/internal/platform/querybuilder"
)

type TransferRepository struct {
	db *sqlx.DB
}

func NewTransferRepository(db *sqlx.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) GetByID(ctx context.Context, transferID int64) (transfer.Transfer, bool, error) {
	query, args, err := qb.Select("*").From("transfers").
		Where(qb.Eq("id", transferID)).
		ToSQL()
	if err != nil {
		return transfer.Transfer{}, false, fmt.Errorf("build get transfer query: %w", err)
	}

	var row transferTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return transfer.Transfer{}, false, nil
		}
		return transfer.Transfer{}, false, fmt.Errorf("get transfer: %w", err)
	}
	return transferFromRow(row), true, nil
}

// ListPendingByClub returns requests addressed to the club, newest first.
func (r *TransferRepository) ListPendingByClub(ctx context.Context, clubID int64) ([]transfer.Transfer, error) {
	query, args, err := qb.Select("*").From("transfers").
		Where(
			qb.Eq("receiving_club_id", clubID),
			qb.Eq("status", string(transfer.StatusPending)),
		).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending transfers query: %w", err)
	}

	var rows []transferTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending transfers: %w", err)
	}

	out := make([]transfer.Transfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, transferFromRow(row))
	}
	return out, nil
}

func (r *TransferRepository) ListCompensationDirections(ctx context.Context) ([]exchange.CompensationDirection, error) {
	query, args, err := qb.Select("id", "name", "kind").From("compensation_directions").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list compensation directions query: %w", err)
	}

	var rows []compensationDirectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list compensation directions: %w", err)
	}

	out := make([]exchange.CompensationDirection, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
