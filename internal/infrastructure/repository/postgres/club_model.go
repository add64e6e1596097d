package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
)

type clubTableModel struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	ShortName     string         `db:"short_name"`
	ManagerUserID sql.NullString `db:"manager_user_id"`
	Budget        int64          `db:"budget"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:            row.ID,
		Name:          row.Name,
		ShortName:     row.ShortName,
		ManagerUserID: row.ManagerUserID.String,
		Budget:        row.Budget,
	}
}
