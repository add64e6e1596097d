package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

// CooldownTracker answers whether a manager may negotiate for a player.
// Expired records are removed on read; nothing sweeps them in the background.
type CooldownTracker struct {
	repo     cooldown.Repository
	duration time.Duration
	logger   *logging.Logger
	now      func() time.Time
}

func NewCooldownTracker(repo cooldown.Repository, duration time.Duration, logger *logging.Logger) *CooldownTracker {
	if logger == nil {
		logger = logging.Default()
	}
	if duration <= 0 {
		duration = time.Minute
	}

	return &CooldownTracker{
		repo:     repo,
		duration: duration,
		logger:   logger,
		now:      time.Now,
	}
}

// Active returns the live record for the pair, if any.
func (t *CooldownTracker) Active(ctx context.Context, userID string, playerID int64) (cooldown.Record, bool, error) {
	rec, ok, err := t.repo.Get(ctx, userID, playerID)
	if err != nil {
		return cooldown.Record{}, false, fmt.Errorf("get cooldown: %w", err)
	}
	if !ok {
		return cooldown.Record{}, false, nil
	}
	if rec.Expired(t.now()) {
		if err := t.repo.Delete(ctx, userID, playerID); err != nil {
			t.logger.WarnContext(ctx, "drop expired cooldown failed", "user_id", userID, "player_id", playerID, "error", err)
		}
		return cooldown.Record{}, false, nil
	}
	return rec, true, nil
}

func (t *CooldownTracker) IsBlocked(ctx context.Context, userID string, playerID int64) (bool, error) {
	_, ok, err := t.Active(ctx, userID, playerID)
	return ok, err
}

// RemainingSeconds is rounded up and zero when no cooldown is active.
func (t *CooldownTracker) RemainingSeconds(ctx context.Context, userID string, playerID int64) (int, error) {
	rec, ok, err := t.Active(ctx, userID, playerID)
	if err != nil || !ok {
		return 0, err
	}
	return rec.RemainingSeconds(t.now()), nil
}

// SetCooldown blocks the pair for the configured duration starting now.
func (t *CooldownTracker) SetCooldown(ctx context.Context, userID string, playerID int64) (cooldown.Record, error) {
	return t.SetUntil(ctx, userID, playerID, t.now().Add(t.duration))
}

func (t *CooldownTracker) SetUntil(ctx context.Context, userID string, playerID int64, until time.Time) (cooldown.Record, error) {
	rec := cooldown.Record{
		UserID:    userID,
		PlayerID:  playerID,
		Until:     until,
		Reason:    cooldown.ReasonLowOffer,
		CreatedAt: t.now(),
	}
	if err := rec.Validate(); err != nil {
		return cooldown.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := t.repo.Upsert(ctx, rec); err != nil {
		return cooldown.Record{}, fmt.Errorf("persist cooldown: %w", err)
	}
	return rec, nil
}

func (t *CooldownTracker) Clear(ctx context.Context, userID string, playerID int64) error {
	if err := t.repo.Delete(ctx, userID, playerID); err != nil {
		return fmt.Errorf("clear cooldown: %w", err)
	}
	return nil
}

// ClearRecord deletes the stored cooldown only while it still ends at
// rec.Until; a newer cooldown for the same pair is left alone.
func (t *CooldownTracker) ClearRecord(ctx context.Context, rec cooldown.Record) (bool, error) {
	stored, ok, err := t.repo.Get(ctx, rec.UserID, rec.PlayerID)
	if err != nil {
		return false, fmt.Errorf("get cooldown: %w", err)
	}
	if !ok || !stored.Until.Equal(rec.Until) {
		return false, nil
	}
	if err := t.Clear(ctx, rec.UserID, rec.PlayerID); err != nil {
		return false, err
	}
	return true, nil
}

func (t *CooldownTracker) ListActive(ctx context.Context) ([]cooldown.Record, error) {
	records, err := t.repo.ListActive(ctx, t.now())
	if err != nil {
		return nil, fmt.Errorf("list active cooldowns: %w", err)
	}
	return records, nil
}

func (t *CooldownTracker) Duration() time.Duration {
	return t.duration
}
