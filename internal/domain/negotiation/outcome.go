package negotiation

import "time"

// OutcomeKind discriminates the Outcome variants.
type OutcomeKind string

const (
	OutcomeAccepted             OutcomeKind = "accepted"
	OutcomeCounterOffered       OutcomeKind = "counter_offered"
	OutcomeRejectedSoft         OutcomeKind = "rejected_soft"
	OutcomeRejectedWithCooldown OutcomeKind = "rejected_with_cooldown"
)

// Outcome is the selling side's answer to an offer. Only the fields that
// belong to Kind are set.
type Outcome struct {
	Kind          OutcomeKind
	FinalPrice    int64
	ProposedPrice int64
	Reason        string
	CooldownUntil time.Time
}

func Accepted(finalPrice int64) Outcome {
	return Outcome{Kind: OutcomeAccepted, FinalPrice: finalPrice}
}

func CounterOffered(proposedPrice int64) Outcome {
	return Outcome{Kind: OutcomeCounterOffered, ProposedPrice: proposedPrice}
}

func RejectedSoft(reason string) Outcome {
	return Outcome{Kind: OutcomeRejectedSoft, Reason: reason}
}

func RejectedWithCooldown(until time.Time) Outcome {
	return Outcome{Kind: OutcomeRejectedWithCooldown, CooldownUntil: until}
}
