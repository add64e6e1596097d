package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

type transferTableModel struct {
	ID                      int64         `db:"id"`
	Kind                    string        `db:"kind"`
	Status                  string        `db:"status"`
	RequestingClubID        int64         `db:"requesting_club_id"`
	ReceivingClubID         int64         `db:"receiving_club_id"`
	PlayerID                sql.NullInt64 `db:"player_id"`
	Amount                  int64         `db:"amount"`
	OfferedPlayerIDs        pq.Int64Array `db:"offered_player_ids"`
	RequestedPlayerIDs      pq.Int64Array `db:"requested_player_ids"`
	CompensationDirectionID sql.NullInt64 `db:"compensation_direction_id"`
	CompensationAmount      int64         `db:"compensation_amount"`
	CreatedAt               time.Time     `db:"created_at"`
	ResolvedAt              sql.NullTime  `db:"resolved_at"`
}

func transferFromRow(row transferTableModel) transfer.Transfer {
	return transfer.Transfer{
		ID:                      row.ID,
		Kind:                    transfer.Kind(row.Kind),
		Status:                  transfer.Status(row.Status),
		RequestingClubID:        row.RequestingClubID,
		ReceivingClubID:         row.ReceivingClubID,
		PlayerID:                row.PlayerID.Int64,
		Amount:                  row.Amount,
		OfferedPlayerIDs:        []int64(row.OfferedPlayerIDs),
		RequestedPlayerIDs:      []int64(row.RequestedPlayerIDs),
		CompensationDirectionID: row.CompensationDirectionID.Int64,
		CompensationAmount:      row.CompensationAmount,
		CreatedAt:               row.CreatedAt,
		ResolvedAt:              nullTimePtr(row.ResolvedAt),
	}
}

type compensationDirectionTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Kind string `db:"kind"`
}

func (m compensationDirectionTableModel) toDomain() exchange.CompensationDirection {
	return exchange.CompensationDirection{ID: m.ID, Name: m.Name, Kind: exchange.DirectionKind(m.Kind)}
}
