package exchange

import (
	"errors"
	"fmt"
	"slices"
)

const MaxPlayersPerSide = 2

var (
	ErrTypeNotSelected         = errors.New("select a negotiation type")
	ErrCounterpartyRequired    = errors.New("select the counterpart club")
	ErrSameClub                = errors.New("a club cannot negotiate with itself")
	ErrCountsNotDeclared       = errors.New("declare how many players each side offers")
	ErrInvalidCount            = errors.New("each side must offer 1 or 2 players")
	ErrSelectionLimit          = errors.New("selection exceeds the declared number of players")
	ErrSelectionIncomplete     = errors.New("selected players do not match the declared number")
	ErrCompensationRequired    = errors.New("select a compensation direction")
	ErrInvalidCompensation     = errors.New("invalid compensation amount")
	ErrPlayerOnBothSides       = errors.New("a player cannot be offered and requested at once")
	ErrExchangeTypeUnsupported = errors.New("proposal type does not carry an exchange")
)

// Type is the kind of club-to-club negotiation.
type Type string

const (
	TypeBuy      Type = "buy"
	TypeExchange Type = "exchange"
)

// DirectionKind says which side pays the cash compensation.
type DirectionKind string

const (
	DirectionNone          DirectionKind = "none"
	DirectionRequesterPays DirectionKind = "requester_pays"
	DirectionReceiverPays  DirectionKind = "receiver_pays"
)

// CompensationDirection is a catalogue entry served by the store.
type CompensationDirection struct {
	ID   int64
	Name string
	Kind DirectionKind
}

// Proposal is a player-for-player exchange submitted as one unit. The
// counterpart club accepts or rejects it later.
type Proposal struct {
	RequestingClubID      int64
	CounterpartyClubID    int64
	OfferedPlayerIDs      []int64
	RequestedPlayerIDs    []int64
	CompensationDirection CompensationDirection
	CompensationAmount    int64
}

func (p Proposal) Validate() error {
	if p.CounterpartyClubID <= 0 {
		return ErrCounterpartyRequired
	}
	if p.RequestingClubID == p.CounterpartyClubID {
		return ErrSameClub
	}
	if err := validateSide(p.OfferedPlayerIDs); err != nil {
		return fmt.Errorf("offered players: %w", err)
	}
	if err := validateSide(p.RequestedPlayerIDs); err != nil {
		return fmt.Errorf("requested players: %w", err)
	}
	for _, id := range p.OfferedPlayerIDs {
		if slices.Contains(p.RequestedPlayerIDs, id) {
			return ErrPlayerOnBothSides
		}
	}

	return ValidateCompensation(p.CompensationDirection.Kind, p.CompensationAmount)
}

// ValidateCompensation requires an explicit direction; "none" carries no cash
// and every other direction carries a positive amount.
func ValidateCompensation(kind DirectionKind, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidCompensation)
	}

	switch kind {
	case DirectionNone:
		if amount != 0 {
			return fmt.Errorf("%w: no compensation selected but amount is %d", ErrInvalidCompensation, amount)
		}
	case DirectionRequesterPays, DirectionReceiverPays:
		if amount == 0 {
			return fmt.Errorf("%w: amount is required for %s", ErrInvalidCompensation, kind)
		}
	default:
		return ErrCompensationRequired
	}

	return nil
}

func validateSide(ids []int64) error {
	if len(ids) < 1 || len(ids) > MaxPlayersPerSide {
		return ErrInvalidCount
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("invalid player id %d", id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate player id %d", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
