package negotiation

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
)

// Offer is a single bid by a manager for a player. It lives only for one
// negotiation round.
type Offer struct {
	ID          string
	UserID      string
	PlayerID    int64
	Amount      int64
	SubmittedAt time.Time
}

// Evaluator decides how the selling side answers an offer. It has no side
// effects; randomness only affects the counter-offer price.
type Evaluator struct {
	rules Rules
	rand  func() float64
}

func NewEvaluator(rules Rules, random func() float64) *Evaluator {
	if random == nil {
		random = rand.Float64
	}
	return &Evaluator{rules: rules, rand: random}
}

func (e *Evaluator) Rules() Rules {
	return e.rules
}

// AdjustedTarget is the player's sale price scaled by the age/rating multiplier.
func AdjustedTarget(p player.Player) float64 {
	return float64(p.Valuation.SalePrice) * AgeRatingMultiplier(p.Age, p.Rating)
}

func (e *Evaluator) Evaluate(offer Offer, p player.Player, budget int64) Outcome {
	if offer.Amount > budget {
		return RejectedSoft(ReasonInsufficientBudget)
	}

	target := AdjustedTarget(p)
	amount := float64(offer.Amount)

	switch {
	case amount >= target*e.rules.AcceptRatio:
		return Accepted(offer.Amount)
	case amount >= target*e.rules.CounterRatio:
		return CounterOffered(e.counterPrice(target))
	default:
		return RejectedWithCooldown(offer.SubmittedAt.Add(e.rules.CooldownDuration))
	}
}

func (e *Evaluator) counterPrice(target float64) int64 {
	lo := target * e.rules.CounterBandMin
	hi := target * e.rules.CounterBandMax
	if math.Ceil(lo) > hi {
		return int64(math.Ceil(lo))
	}
	factor := e.rules.CounterBandMin + e.rand()*(e.rules.CounterBandMax-e.rules.CounterBandMin)

	price := math.Floor(target * factor)
	if price < lo {
		price = math.Ceil(lo)
	}
	if price > hi {
		price = math.Floor(hi)
	}
	return int64(price)
}
