package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
)

type cooldownKey struct {
	userID   string
	playerID int64
}

// CooldownRepository keeps records until deleted; expiry is the caller's call.
type CooldownRepository struct {
	mu      sync.RWMutex
	records map[cooldownKey]cooldown.Record
}

func NewCooldownRepository() *CooldownRepository {
	return &CooldownRepository{records: make(map[cooldownKey]cooldown.Record)}
}

func (r *CooldownRepository) Get(_ context.Context, userID string, playerID int64) (cooldown.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[cooldownKey{userID, playerID}]
	return rec, ok, nil
}

func (r *CooldownRepository) Upsert(_ context.Context, record cooldown.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	r.records[cooldownKey{record.UserID, record.PlayerID}] = record
	r.mu.Unlock()
	return nil
}

func (r *CooldownRepository) Delete(_ context.Context, userID string, playerID int64) error {
	r.mu.Lock()
	delete(r.records, cooldownKey{userID, playerID})
	r.mu.Unlock()
	return nil
}

func (r *CooldownRepository) ListActive(_ context.Context, now time.Time) ([]cooldown.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cooldown.Record, 0, len(r.records))
	for _, rec := range r.records {
		if !rec.Expired(now) {
			out = append(out, rec)
		}
	}
	return out, nil
}
