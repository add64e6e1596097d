package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

// UnblockNotifier receives one signal per expired cooldown.
type UnblockNotifier interface {
	NegotiationUnblocked(ctx context.Context, rec cooldown.Record) error
}

type watchKey struct {
	userID   string
	playerID int64
}

type watch struct {
	rec    cooldown.Record
	cancel context.CancelFunc
}

// CooldownWatcher runs one ticking goroutine per active cooldown. When the
// tracker reports zero remaining time the record is cleared and the expiry is
// published exactly once to the notifier and to every OnUnblocked listener.
type CooldownWatcher struct {
	tracker  *CooldownTracker
	notifier UnblockNotifier
	interval time.Duration
	logger   *logging.Logger

	mu        sync.Mutex
	watches   map[watchKey]*watch
	listeners []func(cooldown.Record)
	closed    bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCooldownWatcher(tracker *CooldownTracker, notifier UnblockNotifier, interval time.Duration, logger *logging.Logger) *CooldownWatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		interval = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &CooldownWatcher{
		tracker:  tracker,
		notifier: notifier,
		interval: interval,
		logger:   logger,
		watches:  make(map[watchKey]*watch),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// OnUnblocked registers an in-process listener, e.g. the session registry.
func (w *CooldownWatcher) OnUnblocked(fn func(cooldown.Record)) {
	if fn == nil {
		return
	}
	w.mu.Lock()
	w.listeners = append(w.listeners, fn)
	w.mu.Unlock()
}

// Watch arms a watch for rec, replacing any watch on the same pair.
func (w *CooldownWatcher) Watch(rec cooldown.Record) {
	key := watchKey{rec.UserID, rec.PlayerID}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if prev, ok := w.watches[key]; ok {
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(w.ctx)
	wt := &watch{rec: rec, cancel: cancel}
	w.watches[key] = wt

	w.wg.Add(1)
	go w.run(ctx, key, wt)
}

// Stop tears down the watch without publishing anything.
func (w *CooldownWatcher) Stop(userID string, playerID int64) bool {
	key := watchKey{userID, playerID}

	w.mu.Lock()
	defer w.mu.Unlock()
	wt, ok := w.watches[key]
	if !ok {
		return false
	}
	wt.cancel()
	delete(w.watches, key)
	return true
}

func (w *CooldownWatcher) Watching(userID string, playerID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watches[watchKey{userID, playerID}]
	return ok
}

// Restore re-arms watches for records that outlived a restart.
func (w *CooldownWatcher) Restore(ctx context.Context) (int, error) {
	records, err := w.tracker.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		w.Watch(rec)
	}
	if len(records) > 0 {
		w.logger.InfoContext(ctx, "restored cooldown watches", "count", len(records))
	}
	return len(records), nil
}

// Close stops every watch and waits for the goroutines to exit.
func (w *CooldownWatcher) Close() {
	w.mu.Lock()
	w.closed = true
	w.watches = make(map[watchKey]*watch)
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
}

func (w *CooldownWatcher) run(ctx context.Context, key watchKey, wt *watch) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if !wt.rec.Expired(w.tracker.now()) {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				continue
			}
		}
		w.expire(ctx, key, wt)
		return
	}
}

func (w *CooldownWatcher) expire(ctx context.Context, key watchKey, wt *watch) {
	w.mu.Lock()
	if w.watches[key] != wt {
		// stopped or replaced while we were ticking
		w.mu.Unlock()
		return
	}
	delete(w.watches, key)
	listeners := append([]func(cooldown.Record){}, w.listeners...)
	w.mu.Unlock()
	defer wt.cancel()

	if _, err := w.tracker.ClearRecord(ctx, wt.rec); err != nil {
		w.logger.WarnContext(ctx, "clear expired cooldown failed", "user_id", key.userID, "player_id", key.playerID, "error", err)
	}
	for _, fn := range listeners {
		fn(wt.rec)
	}
	if w.notifier == nil {
		return
	}
	if err := w.notifier.NegotiationUnblocked(ctx, wt.rec); err != nil {
		w.logger.WarnContext(ctx, "publish negotiation unblocked failed", "user_id", key.userID, "player_id", key.playerID, "error", err)
	}
}
