package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo market into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM clubs`); err != nil {
		return fmt.Errorf("count clubs for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedClubs() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO clubs (id, name, short_name, manager_user_id, budget)
VALUES (:id, :name, :short_name, :manager_user_id, :budget)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":              c.ID,
			"name":            c.Name,
			"short_name":      c.ShortName,
			"manager_user_id": nullString(c.ManagerUserID),
			"budget":          c.Budget,
		})
		if err != nil {
			return fmt.Errorf("bind seed club %d query: %w", c.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed club %d: %w", c.ID, err)
		}
	}

	for _, d := range memory.SeedCompensationDirections() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO compensation_directions (id, name, kind) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			d.ID, d.Name, string(d.Kind),
		); err != nil {
			return fmt.Errorf("seed compensation direction %d: %w", d.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (id, name, position, age, rating, pace, shooting, passing, dribbling, defending, physical,
                     country_id, preferred_foot, club_id, sale_price, release_price, wage, image_url)
VALUES (:id, :name, :position, :age, :rating, :pace, :shooting, :passing, :dribbling, :defending, :physical,
        :country_id, :preferred_foot, :club_id, :sale_price, :release_price, :wage, :image_url)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":             p.ID,
			"name":           p.Name,
			"position":       string(p.Position),
			"age":            p.Age,
			"rating":         p.Rating,
			"pace":           p.Attributes.Pace,
			"shooting":       p.Attributes.Shooting,
			"passing":        p.Attributes.Passing,
			"dribbling":      p.Attributes.Dribbling,
			"defending":      p.Attributes.Defending,
			"physical":       p.Attributes.Physical,
			"country_id":     p.CountryID,
			"preferred_foot": string(p.PreferredFoot),
			"club_id":        nullInt64(p.ClubID),
			"sale_price":     p.Valuation.SalePrice,
			"release_price":  p.Valuation.ReleasePrice,
			"wage":           p.Valuation.Wage,
			"image_url":      p.ImageURL,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %d query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed player %d: %w", p.ID, err)
		}
	}

	for _, table := range []string{"clubs", "players", "compensation_directions"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`, table, table)); err != nil {
			return fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
