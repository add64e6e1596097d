package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/preference"
)

func openTestStore(t *testing.T) *PreferenceStore {
	t.Helper()

	store, err := Open(t.Context(), filepath.Join(t.TempDir(), "prefs", "preferences.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPreferenceStore_SaveGetDelete(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := t.Context()

	_, ok, err := store.Get(ctx, "demo-manager-1")
	require.NoError(t, err)
	require.False(t, ok)

	saved := preference.Preferences{
		UserID:        "demo-manager-1",
		SchemaVersion: preference.CurrentSchemaVersion,
		Market: preference.MarketFilter{
			Search:        "peña",
			Positions:     []player.Position{player.PositionMidfielder},
			RatingMin:     80,
			PreferredFoot: player.FootRight,
			MinAttributes: map[player.Attribute]int{player.AttributePassing: 85},
		},
		UpdatedAt: time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, saved))

	got, ok, err := store.Get(ctx, "demo-manager-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, saved.Market, got.Market)
	require.True(t, got.UpdatedAt.Equal(saved.UpdatedAt))

	saved.Market.RatingMin = 70
	require.NoError(t, store.Save(ctx, saved))
	got, _, err = store.Get(ctx, "demo-manager-1")
	require.NoError(t, err)
	require.Equal(t, 70, got.Market.RatingMin)

	require.NoError(t, store.Delete(ctx, "demo-manager-1"))
	_, ok, err = store.Get(ctx, "demo-manager-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPreferenceStore_RejectsFutureSchema(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := t.Context()

	err := store.Save(ctx, preference.Preferences{UserID: "u", SchemaVersion: preference.CurrentSchemaVersion + 1})
	require.True(t, errors.Is(err, preference.ErrUnsupportedSchema))

	_, err = store.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, schema_version, payload, updated_at) VALUES (?, ?, ?, ?)`,
		"future", 7, `{}`, time.Now().UTC().Format(time.RFC3339Nano))
	require.NoError(t, err)

	_, _, err = store.Get(ctx, "future")
	require.True(t, errors.Is(err, preference.ErrUnsupportedSchema))
}

func TestPreferenceStore_UpgradesLegacyBlob(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := t.Context()

	legacy := `{"filtrosCompletos":{
		"habilidades":{"juga_velocidad":"82","juga_aceleracion":88,"juga_salto":40,"juga_valoraciongeneral":75,"juga_efecto":90},
		"posiciones":{"CB":1,"LB":1,"CF":0,"AMF":1},
		"edad":21,
		"pierna":"Izquierda",
		"pais":"34"}}`
	_, err := store.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, schema_version, payload, updated_at) VALUES (?, 0, ?, ?)`,
		"legacy-user", legacy, time.Now().UTC().Format(time.RFC3339Nano))
	require.NoError(t, err)

	got, ok, err := store.Get(ctx, "legacy-user")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, preference.CurrentSchemaVersion, got.SchemaVersion)
	require.Equal(t, preference.MarketFilter{
		Positions:     []player.Position{player.PositionDefender, player.PositionMidfielder},
		RatingMin:     75,
		MinAge:        21,
		CountryID:     34,
		PreferredFoot: player.FootLeft,
		MinAttributes: map[player.Attribute]int{player.AttributePace: 88},
	}, got.Market)
	require.NoError(t, got.Market.Validate())
}

func TestPreferenceStore_GetReportsCorruptTimestamp(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := t.Context()

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, schema_version, payload, updated_at) VALUES (?, ?, ?, ?)`,
		"broken-clock", preference.CurrentSchemaVersion, `{}`, "yesterday")
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "broken-clock")
	require.Error(t, err)
	require.False(t, ok)
	require.Contains(t, err.Error(), "updated_at")
}
