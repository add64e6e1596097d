package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
)

func newTestStore(t *testing.T) (*CooldownStore, *miniredis.Miniredis, time.Time) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	store := NewCooldownStore(client, "test:cooldown")
	store.now = func() time.Time { return now }
	return store, mr, now
}

func TestCooldownStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, mr, now := newTestStore(t)
	ctx := t.Context()
	rec := cooldown.Record{
		UserID:    "demo-manager-1",
		PlayerID:  203,
		Until:     now.Add(time.Minute),
		Reason:    cooldown.ReasonLowOffer,
		CreatedAt: now,
	}

	require.NoError(t, store.Upsert(ctx, rec))
	require.True(t, mr.Exists("test:cooldown:demo-manager-1:203"))
	require.Equal(t, 2*time.Minute, mr.TTL("test:cooldown:demo-manager-1:203"))

	got, ok, err := store.Get(ctx, rec.UserID, rec.PlayerID)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.Until.Equal(rec.Until))
	require.Equal(t, rec.Reason, got.Reason)

	require.NoError(t, store.Delete(ctx, rec.UserID, rec.PlayerID))
	_, ok, err = store.Get(ctx, rec.UserID, rec.PlayerID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCooldownStore_ListActiveSkipsExpired(t *testing.T) {
	t.Parallel()

	store, _, now := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.Upsert(ctx, cooldown.Record{UserID: "a", PlayerID: 1, Until: now.Add(30 * time.Second)}))
	require.NoError(t, store.Upsert(ctx, cooldown.Record{UserID: "b", PlayerID: 2, Until: now.Add(90 * time.Second)}))

	active, err := store.ListActive(ctx, now.Add(45*time.Second))
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "b", active[0].UserID)
}

func TestCooldownStore_KeyExpiresAfterGrace(t *testing.T) {
	t.Parallel()

	store, mr, now := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.Upsert(ctx, cooldown.Record{UserID: "a", PlayerID: 1, Until: now.Add(time.Second)}))
	mr.FastForward(time.Second + expiryGrace)

	_, ok, err := store.Get(ctx, "a", 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCooldownStore_UpsertRejectsInvalidRecord(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(t)
	require.Error(t, store.Upsert(t.Context(), cooldown.Record{PlayerID: 1}))
}
