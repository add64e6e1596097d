package cooldown

import (
	"context"
	"time"
)

// Repository persists cooldown records. Implementations may drop expired
// records on their own but are not required to sweep them.
type Repository interface {
	Get(ctx context.Context, userID string, playerID int64) (Record, bool, error)
	Upsert(ctx context.Context, record Record) error
	Delete(ctx context.Context, userID string, playerID int64) error
	ListActive(ctx context.Context, now time.Time) ([]Record, error)
}
