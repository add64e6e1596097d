package negotiation

import "time"

const (
	ReasonInsufficientBudget = "insufficient budget for this offer"
)

// Rules stores the negotiation thresholds, expressed as ratios of the
// adjusted target value.
//
// Counter prices are whole amounts inside [CounterBandMin, CounterBandMax] of
// the target. When the band is too narrow to hold a whole amount (targets
// below 12.5) the counter is the first whole amount above the band's
// lower bound.
type Rules struct {
	AcceptRatio      float64
	CounterRatio     float64
	CounterBandMin   float64
	CounterBandMax   float64
	CooldownDuration time.Duration
}

func DefaultRules() Rules {
	return Rules{
		AcceptRatio:      0.95,
		CounterRatio:     0.80,
		CounterBandMin:   0.96,
		CounterBandMax:   1.04,
		CooldownDuration: time.Minute,
	}
}

// WithCooldown returns a copy of r using the given lockout length.
func (r Rules) WithCooldown(d time.Duration) Rules {
	if d > 0 {
		r.CooldownDuration = d
	}
	return r
}

// AgeRatingMultiplier scales a base valuation: young stars cost more,
// veterans cost less.
func AgeRatingMultiplier(age, rating int) float64 {
	switch {
	case age < 25 && rating > 85:
		return 1.15
	case age < 28 && rating > 80:
		return 1.05
	case age > 32:
		return 0.9
	default:
		return 1
	}
}
