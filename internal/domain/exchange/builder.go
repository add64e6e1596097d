package exchange

import (
	"fmt"
	"slices"
)

// Builder assembles a Proposal one user step at a time.
type Builder struct {
	requestingClubID   int64
	negotiationType    Type
	counterpartyClubID int64
	offeredCount       int
	requestedCount     int
	offered            []int64
	requested          []int64
	direction          *CompensationDirection
	amount             int64
}

func NewBuilder(requestingClubID int64) *Builder {
	return &Builder{requestingClubID: requestingClubID}
}

func (b *Builder) SelectType(t Type) error {
	switch t {
	case TypeBuy, TypeExchange:
	default:
		return fmt.Errorf("unknown negotiation type %q", t)
	}
	if b.negotiationType != t {
		b.offered = nil
		b.requested = nil
	}
	b.negotiationType = t
	return nil
}

func (b *Builder) SelectCounterparty(clubID int64) error {
	if clubID <= 0 {
		return ErrCounterpartyRequired
	}
	if clubID == b.requestingClubID {
		return ErrSameClub
	}
	if b.counterpartyClubID != clubID {
		b.requested = nil
	}
	b.counterpartyClubID = clubID
	return nil
}

// DeclareCounts fixes how many players each side must select.
func (b *Builder) DeclareCounts(offered, requested int) error {
	if offered < 1 || offered > MaxPlayersPerSide || requested < 1 || requested > MaxPlayersPerSide {
		return ErrInvalidCount
	}
	b.offeredCount = offered
	b.requestedCount = requested
	if len(b.offered) > offered {
		b.offered = nil
	}
	if len(b.requested) > requested {
		b.requested = nil
	}
	return nil
}

// ToggleOffered selects or deselects one of the requester's players.
func (b *Builder) ToggleOffered(playerID int64) error {
	next, err := toggle(b.offered, playerID, b.offeredCount)
	if err != nil {
		return fmt.Errorf("offered players: %w", err)
	}
	b.offered = next
	return nil
}

// ToggleRequested selects or deselects one of the counterparty's players.
func (b *Builder) ToggleRequested(playerID int64) error {
	next, err := toggle(b.requested, playerID, b.requestedCount)
	if err != nil {
		return fmt.Errorf("requested players: %w", err)
	}
	b.requested = next
	return nil
}

func (b *Builder) SetCompensation(direction CompensationDirection, amount int64) error {
	if err := ValidateCompensation(direction.Kind, amount); err != nil {
		return err
	}
	b.direction = &direction
	b.amount = amount
	return nil
}

// CanSubmit reports whether Build would succeed.
func (b *Builder) CanSubmit() bool {
	return b.blocker() == nil
}

func (b *Builder) Build() (Proposal, error) {
	if err := b.blocker(); err != nil {
		return Proposal{}, err
	}

	proposal := Proposal{
		RequestingClubID:      b.requestingClubID,
		CounterpartyClubID:    b.counterpartyClubID,
		OfferedPlayerIDs:      slices.Clone(b.offered),
		RequestedPlayerIDs:    slices.Clone(b.requested),
		CompensationDirection: *b.direction,
		CompensationAmount:    b.amount,
	}
	if err := proposal.Validate(); err != nil {
		return Proposal{}, err
	}
	return proposal, nil
}

func (b *Builder) blocker() error {
	switch {
	case b.negotiationType == "":
		return ErrTypeNotSelected
	case b.negotiationType != TypeExchange:
		return ErrExchangeTypeUnsupported
	case b.counterpartyClubID == 0:
		return ErrCounterpartyRequired
	case b.offeredCount == 0 || b.requestedCount == 0:
		return ErrCountsNotDeclared
	case len(b.offered) != b.offeredCount:
		return fmt.Errorf("%w: offered %d of %d", ErrSelectionIncomplete, len(b.offered), b.offeredCount)
	case len(b.requested) != b.requestedCount:
		return fmt.Errorf("%w: requested %d of %d", ErrSelectionIncomplete, len(b.requested), b.requestedCount)
	case b.direction == nil:
		return ErrCompensationRequired
	}
	return nil
}

func toggle(selected []int64, playerID int64, limit int) ([]int64, error) {
	if limit == 0 {
		return selected, ErrCountsNotDeclared
	}
	if playerID <= 0 {
		return selected, fmt.Errorf("invalid player id %d", playerID)
	}
	if idx := slices.Index(selected, playerID); idx >= 0 {
		return slices.Delete(slices.Clone(selected), idx, idx+1), nil
	}
	if len(selected) >= limit {
		return selected, fmt.Errorf("%w: you may select only %d", ErrSelectionLimit, limit)
	}
	return append(slices.Clone(selected), playerID), nil
}
