package usecase

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/memory"
)

func newTestTracker(clock *fakeClock) (*CooldownTracker, *memory.CooldownRepository) {
	repo := memory.NewCooldownRepository()
	tracker := NewCooldownTracker(repo, time.Minute, nil)
	tracker.now = clock.Now
	return tracker, repo
}

func TestCooldownTracker_LifeCycle(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	tracker, repo := newTestTracker(clock)
	ctx := t.Context()

	if blocked, err := tracker.IsBlocked(ctx, "u1", 7); err != nil || blocked {
		t.Fatalf("expected clear pair, got blocked=%v err=%v", blocked, err)
	}

	if _, err := tracker.SetCooldown(ctx, "u1", 7); err != nil {
		t.Fatalf("set cooldown: %v", err)
	}
	for range 3 {
		blocked, err := tracker.IsBlocked(ctx, "u1", 7)
		if err != nil || !blocked {
			t.Fatalf("expected blocked pair, got blocked=%v err=%v", blocked, err)
		}
	}

	clock.Advance(30*time.Second + 200*time.Millisecond)
	secs, err := tracker.RemainingSeconds(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("remaining seconds: %v", err)
	}
	if secs != 30 {
		t.Fatalf("expected 30 remaining seconds rounded up, got %d", secs)
	}

	clock.Advance(30 * time.Second)
	if blocked, _ := tracker.IsBlocked(ctx, "u1", 7); blocked {
		t.Fatalf("expected cooldown to expire")
	}
	if _, ok, _ := repo.Get(ctx, "u1", 7); ok {
		t.Fatalf("expected expired record to be removed on read")
	}
	if secs, _ := tracker.RemainingSeconds(ctx, "u1", 7); secs != 0 {
		t.Fatalf("expected zero remaining, got %d", secs)
	}
}

func TestCooldownWatcher_PublishesExpiryOnce(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	tracker, repo := newTestTracker(clock)
	notifier := newRecordingNotifier()
	watcher := NewCooldownWatcher(tracker, notifier, time.Millisecond, nil)
	t.Cleanup(watcher.Close)

	var listenerCalls atomic.Int32
	watcher.OnUnblocked(func(cooldown.Record) { listenerCalls.Add(1) })

	rec, err := tracker.SetCooldown(t.Context(), "u1", 9)
	if err != nil {
		t.Fatalf("set cooldown: %v", err)
	}
	watcher.Watch(rec)
	if !watcher.Watching("u1", 9) {
		t.Fatalf("expected watch to be armed")
	}

	clock.Advance(time.Minute)

	select {
	case n := <-notifier.ch:
		if n.Kind != notification.KindNegotiationUnblocked || n.UserID != "u1" {
			t.Fatalf("unexpected notification %+v", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for unblock notification")
	}

	time.Sleep(20 * time.Millisecond)
	if got := notifier.count(notification.KindNegotiationUnblocked); got != 1 {
		t.Fatalf("expected exactly one unblock notification, got %d", got)
	}
	if _, ok, _ := repo.Get(t.Context(), "u1", 9); ok {
		t.Fatalf("expected record cleared on expiry")
	}
	if watcher.Watching("u1", 9) {
		t.Fatalf("expected watch to be removed after expiry")
	}
	if got := listenerCalls.Load(); got != 1 {
		t.Fatalf("expected listener called once, got %d", got)
	}
}

func TestCooldownWatcher_StopSuppressesExpiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	tracker, repo := newTestTracker(clock)
	notifier := newRecordingNotifier()
	watcher := NewCooldownWatcher(tracker, notifier, time.Millisecond, nil)
	t.Cleanup(watcher.Close)

	rec, err := tracker.SetCooldown(t.Context(), "u2", 11)
	if err != nil {
		t.Fatalf("set cooldown: %v", err)
	}
	watcher.Watch(rec)
	if !watcher.Stop("u2", 11) {
		t.Fatalf("expected stop to find the watch")
	}
	clock.Advance(2 * time.Minute)
	time.Sleep(30 * time.Millisecond)

	if got := notifier.count(notification.KindNegotiationUnblocked); got != 0 {
		t.Fatalf("expected no notification after stop, got %d", got)
	}
	if _, ok, _ := repo.Get(t.Context(), "u2", 11); !ok {
		t.Fatalf("expected stored record to survive stop")
	}
}

func TestCooldownWatcher_RestoreRearmsActiveRecords(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	tracker, _ := newTestTracker(clock)
	notifier := newRecordingNotifier()
	watcher := NewCooldownWatcher(tracker, notifier, time.Millisecond, nil)
	t.Cleanup(watcher.Close)

	if _, err := tracker.SetCooldown(t.Context(), "u1", 1); err != nil {
		t.Fatalf("set cooldown: %v", err)
	}
	if _, err := tracker.SetUntil(t.Context(), "u1", 2, clock.Now().Add(-time.Second)); err != nil {
		t.Fatalf("set expired cooldown: %v", err)
	}

	n, err := watcher.Restore(t.Context())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if n != 1 || !watcher.Watching("u1", 1) || watcher.Watching("u1", 2) {
		t.Fatalf("expected only the live record re-armed, restored=%d", n)
	}

	watcher.Close()
	if watcher.Watching("u1", 1) {
		t.Fatalf("expected close to drop every watch")
	}
	watcher.Watch(cooldown.Record{UserID: "u1", PlayerID: 3, Until: clock.Now().Add(time.Minute)})
	if watcher.Watching("u1", 3) {
		t.Fatalf("expected closed watcher to ignore new watches")
	}
}

func TestCooldownTracker_ClearRecordKeepsNewerCooldown(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	tracker, repo := newTestTracker(clock)
	ctx := t.Context()

	first, err := tracker.SetCooldown(ctx, "u1", 4)
	if err != nil {
		t.Fatalf("set cooldown: %v", err)
	}
	clock.Advance(10 * time.Second)
	second, err := tracker.SetCooldown(ctx, "u1", 4)
	if err != nil {
		t.Fatalf("set newer cooldown: %v", err)
	}

	cleared, err := tracker.ClearRecord(ctx, first)
	if err != nil || cleared {
		t.Fatalf("stale record must not clear the newer one, cleared=%v err=%v", cleared, err)
	}
	if stored, ok, _ := repo.Get(ctx, "u1", 4); !ok || !stored.Until.Equal(second.Until) {
		t.Fatalf("expected newer cooldown to stay, got %+v ok=%v", stored, ok)
	}

	cleared, err = tracker.ClearRecord(ctx, second)
	if err != nil || !cleared {
		t.Fatalf("expected matching record cleared, cleared=%v err=%v", cleared, err)
	}
	if _, ok, _ := repo.Get(ctx, "u1", 4); ok {
		t.Fatalf("expected record removed")
	}
}

func TestCooldownWatcher_ExpiryLeavesNewerCooldownStored(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	tracker, repo := newTestTracker(clock)
	notifier := newRecordingNotifier()
	watcher := NewCooldownWatcher(tracker, notifier, time.Millisecond, nil)
	t.Cleanup(watcher.Close)

	rec, err := tracker.SetCooldown(t.Context(), "u3", 5)
	if err != nil {
		t.Fatalf("set cooldown: %v", err)
	}
	watcher.Watch(rec)

	// written behind the watcher's back, e.g. by another instance
	newer := cooldown.Record{UserID: "u3", PlayerID: 5, Until: rec.Until.Add(2 * time.Minute), CreatedAt: clock.Now()}
	if err := repo.Upsert(t.Context(), newer); err != nil {
		t.Fatalf("upsert newer cooldown: %v", err)
	}
	clock.Advance(time.Minute)

	select {
	case <-notifier.ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for unblock notification")
	}
	stored, ok, _ := repo.Get(t.Context(), "u3", 5)
	if !ok || !stored.Until.Equal(newer.Until) {
		t.Fatalf("expected newer cooldown to survive expiry of the old watch, got %+v ok=%v", stored, ok)
	}
}
