package cooldown

import (
	"fmt"
	"math"
	"time"
)

const ReasonLowOffer = "offer far below valuation"

// Record bars a manager from negotiating for one player until Until.
type Record struct {
	UserID    string
	PlayerID  int64
	Until     time.Time
	Reason    string
	CreatedAt time.Time
}

func (r Record) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("cooldown user id is required")
	}
	if r.PlayerID <= 0 {
		return fmt.Errorf("cooldown player id is required")
	}
	if r.Until.IsZero() {
		return fmt.Errorf("cooldown expiry is required")
	}

	return nil
}

func (r Record) Expired(now time.Time) bool {
	return !now.Before(r.Until)
}

// Remaining rounds up so a record reports zero only once it has expired.
func (r Record) Remaining(now time.Time) time.Duration {
	if r.Expired(now) {
		return 0
	}
	return r.Until.Sub(now)
}

func (r Record) RemainingSeconds(now time.Time) int {
	remaining := r.Remaining(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}
