package negotiation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrCooldownActive    = errors.New("negotiation is in cooldown")
	ErrOfferOutstanding  = errors.New("an offer for this player is already being evaluated")
	ErrInvalidTransition = errors.New("invalid negotiation transition")
)

// State is a negotiation session state.
type State string

const (
	StateIdle            State = "idle"
	StateOfferSubmitted  State = "offer_submitted"
	StateAccepted        State = "accepted"
	StateCounterOffered  State = "counter_offered"
	StateRejectedSoft    State = "rejected_soft"
	StateRejectedBlocked State = "rejected_blocked"
	StateCooldown        State = "cooldown"
)

// Session tracks one manager negotiating for one player.
//
// CounterOffered and RejectedSoft settle back to Idle, RejectedBlocked
// settles into Cooldown, and Cooldown only leaves through Unblock.
type Session struct {
	UserID        string
	PlayerID      int64
	State         State
	Offer         *Offer
	LastOutcome   *Outcome
	CooldownUntil time.Time
	UpdatedAt     time.Time
}

func NewSession(userID string, playerID int64, now time.Time) *Session {
	return &Session{
		UserID:    userID,
		PlayerID:  playerID,
		State:     StateIdle,
		UpdatedAt: now,
	}
}

// Submit moves Idle to OfferSubmitted. A session in Cooldown stays untouched.
func (s *Session) Submit(offer Offer, now time.Time) error {
	switch s.State {
	case StateCooldown, StateRejectedBlocked:
		return ErrCooldownActive
	case StateOfferSubmitted:
		return ErrOfferOutstanding
	case StateAccepted:
		return fmt.Errorf("%w: player already agreed", ErrInvalidTransition)
	}

	s.Settle()
	s.State = StateOfferSubmitted
	s.Offer = &offer
	s.UpdatedAt = now
	return nil
}

// Resolve applies the evaluator outcome to the submitted offer.
func (s *Session) Resolve(outcome Outcome, now time.Time) (State, error) {
	if s.State != StateOfferSubmitted {
		return s.State, fmt.Errorf("%w: resolve from %s", ErrInvalidTransition, s.State)
	}

	switch outcome.Kind {
	case OutcomeAccepted:
		s.State = StateAccepted
	case OutcomeCounterOffered:
		s.State = StateCounterOffered
	case OutcomeRejectedSoft:
		s.State = StateRejectedSoft
	case OutcomeRejectedWithCooldown:
		s.State = StateRejectedBlocked
		s.CooldownUntil = outcome.CooldownUntil
	default:
		return s.State, fmt.Errorf("%w: unknown outcome %q", ErrInvalidTransition, outcome.Kind)
	}

	s.LastOutcome = &outcome
	s.UpdatedAt = now
	return s.State, nil
}

// Settle performs the automatic follow-up transition of a resolved state.
func (s *Session) Settle() {
	switch s.State {
	case StateCounterOffered, StateRejectedSoft:
		s.State = StateIdle
		s.Offer = nil
	case StateRejectedBlocked:
		s.State = StateCooldown
		s.Offer = nil
	}
}

// Void discards the current offer after the transfer could not be completed.
func (s *Session) Void(now time.Time) {
	if s.State != StateOfferSubmitted && s.State != StateAccepted {
		return
	}
	s.State = StateIdle
	s.Offer = nil
	s.UpdatedAt = now
}

// Block puts the session into Cooldown, e.g. when a persisted record is found.
func (s *Session) Block(until time.Time, now time.Time) {
	if s.State == StateOfferSubmitted {
		return
	}
	s.State = StateCooldown
	s.Offer = nil
	s.CooldownUntil = until
	s.UpdatedAt = now
}

// Unblock leaves Cooldown once the tracker reports expiry.
func (s *Session) Unblock(now time.Time) {
	if s.State != StateCooldown && s.State != StateRejectedBlocked {
		return
	}
	s.State = StateIdle
	s.CooldownUntil = time.Time{}
	s.UpdatedAt = now
}

func (s *Session) InCooldown() bool {
	return s.State == StateCooldown || s.State == StateRejectedBlocked
}
