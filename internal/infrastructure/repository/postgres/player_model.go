package postgres

import (
	"database/sql"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
)

type playerTableModel struct {
	ID            int64         `db:"id"`
	Name          string        `db:"name"`
	Position      string        `db:"position"`
	Age           int           `db:"age"`
	Rating        int           `db:"rating"`
	Pace          int           `db:"pace"`
	Shooting      int           `db:"shooting"`
	Passing       int           `db:"passing"`
	Dribbling     int           `db:"dribbling"`
	Defending     int           `db:"defending"`
	Physical      int           `db:"physical"`
	CountryID     int64         `db:"country_id"`
	PreferredFoot string        `db:"preferred_foot"`
	ClubID        sql.NullInt64 `db:"club_id"`
	SalePrice     int64         `db:"sale_price"`
	ReleasePrice  int64         `db:"release_price"`
	Wage          int64         `db:"wage"`
	ImageURL      string        `db:"image_url"`
}

var playerSelectColumns = []string{
	"id",
	"name",
	"position",
	"age",
	"rating",
	"pace",
	"shooting",
	"passing",
	"dribbling",
	"defending",
	"physical",
	"country_id",
	"preferred_foot",
	"club_id",
	"sale_price",
	"release_price",
	"wage",
	"image_url",
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.ID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		Age:      row.Age,
		Rating:   row.Rating,
		Attributes: player.Attributes{
			Pace:      row.Pace,
			Shooting:  row.Shooting,
			Passing:   row.Passing,
			Dribbling: row.Dribbling,
			Defending: row.Defending,
			Physical:  row.Physical,
		},
		CountryID:     row.CountryID,
		PreferredFoot: player.Foot(row.PreferredFoot),
		ClubID:        row.ClubID.Int64,
		Valuation: player.Valuation{
			SalePrice:    row.SalePrice,
			ReleasePrice: row.ReleasePrice,
			Wage:         row.Wage,
		},
		ImageURL: row.ImageURL,
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}
