// Package sqlite stores per-user preferences in a local sqlite file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/preference"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

type marketFilterPayload struct {
	Search        string         `json:"search,omitempty"`
	Positions     []string       `json:"positions,omitempty"`
	RatingMin     int            `json:"rating_min,omitempty"`
	RatingMax     int            `json:"rating_max,omitempty"`
	MinAge        int            `json:"min_age,omitempty"`
	CountryID     int64          `json:"country_id,omitempty"`
	PreferredFoot string         `json:"preferred_foot,omitempty"`
	MinAttributes map[string]int `json:"min_attributes,omitempty"`
}

type PreferenceStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates the database file if needed and applies the embedded migrations.
func Open(ctx context.Context, path string) (*PreferenceStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &PreferenceStore{db: db, now: time.Now}, nil
}

// applyMigrations leaves the migrate instance open: closing it would close db.
func applyMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("load preference migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create preference migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply preference migrations: %w", err)
	}
	return nil
}

func (s *PreferenceStore) Close() error {
	return s.db.Close()
}

func (s *PreferenceStore) Get(ctx context.Context, userID string) (preference.Preferences, bool, error) {
	var (
		version   int
		payload   string
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT schema_version, payload, updated_at FROM user_preferences WHERE user_id = ?`, userID,
	).Scan(&version, &payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return preference.Preferences{}, false, nil
	}
	if err != nil {
		return preference.Preferences{}, false, fmt.Errorf("select preferences: %w", err)
	}

	var filter preference.MarketFilter
	switch {
	case version > preference.CurrentSchemaVersion:
		return preference.Preferences{}, false, fmt.Errorf("%w: version %d", preference.ErrUnsupportedSchema, version)
	case version == 0:
		filter, err = upgradeLegacy([]byte(payload))
	default:
		filter, err = decodeFilter([]byte(payload))
	}
	if err != nil {
		return preference.Preferences{}, false, err
	}

	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return preference.Preferences{}, false, fmt.Errorf("decode preferences updated_at for %s: %w", userID, err)
	}
	return preference.Preferences{
		UserID:        userID,
		SchemaVersion: preference.CurrentSchemaVersion,
		Market:        filter,
		UpdatedAt:     updated,
	}, true, nil
}

func (s *PreferenceStore) Save(ctx context.Context, prefs preference.Preferences) error {
	if prefs.SchemaVersion > preference.CurrentSchemaVersion {
		return fmt.Errorf("%w: version %d", preference.ErrUnsupportedSchema, prefs.SchemaVersion)
	}
	payload, err := encodeFilter(prefs.Market)
	if err != nil {
		return err
	}
	updatedAt := prefs.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO user_preferences (user_id, schema_version, payload, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET
    schema_version = excluded.schema_version,
    payload = excluded.payload,
    updated_at = excluded.updated_at`,
		prefs.UserID, preference.CurrentSchemaVersion, string(payload), updatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

func (s *PreferenceStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM user_preferences WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}

func encodeFilter(f preference.MarketFilter) ([]byte, error) {
	p := marketFilterPayload{
		Search:        f.Search,
		RatingMin:     f.RatingMin,
		RatingMax:     f.RatingMax,
		MinAge:        f.MinAge,
		CountryID:     f.CountryID,
		PreferredFoot: string(f.PreferredFoot),
	}
	for _, pos := range f.Positions {
		p.Positions = append(p.Positions, string(pos))
	}
	if len(f.MinAttributes) > 0 {
		p.MinAttributes = make(map[string]int, len(f.MinAttributes))
		for attr, v := range f.MinAttributes {
			p.MinAttributes[string(attr)] = v
		}
	}

	data, err := sonic.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}
	return data, nil
}

func decodeFilter(raw []byte) (preference.MarketFilter, error) {
	var p marketFilterPayload
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return preference.MarketFilter{}, fmt.Errorf("decode preferences: %w", err)
	}

	f := preference.MarketFilter{
		Search:        p.Search,
		RatingMin:     p.RatingMin,
		RatingMax:     p.RatingMax,
		MinAge:        p.MinAge,
		CountryID:     p.CountryID,
		PreferredFoot: player.Foot(p.PreferredFoot),
	}
	for _, pos := range p.Positions {
		f.Positions = append(f.Positions, player.Position(pos))
	}
	if len(p.MinAttributes) > 0 {
		f.MinAttributes = make(map[player.Attribute]int, len(p.MinAttributes))
		for attr, v := range p.MinAttributes {
			f.MinAttributes[player.Attribute(attr)] = v
		}
	}
	return f, nil
}
