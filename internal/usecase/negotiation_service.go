package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
	"github.com/riskibarqy/transfer-market/internal/domain/negotiation"
	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	idgen "github.com/riskibarqy/transfer-market/internal/platform/id"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
	"github.com/riskibarqy/transfer-market/internal/platform/money"
)

// OfferEvaluator decides the selling side's answer to an offer.
type OfferEvaluator interface {
	Evaluate(offer negotiation.Offer, p player.Player, budget int64) negotiation.Outcome
}

type SubmitOfferInput struct {
	UserID   string
	PlayerID int64
	Amount   int64
}

type OfferResult struct {
	Offer   negotiation.Offer
	Outcome negotiation.Outcome
	State   negotiation.State
	Message string
}

type NegotiationStatus struct {
	PlayerID         int64
	State            negotiation.State
	RemainingSeconds int
	CooldownUntil    time.Time
	LastOutcome      *negotiation.Outcome
}

type sessionKey struct {
	userID   string
	playerID int64
}

type NegotiationService struct {
	clubRepo   club.Repository
	playerRepo player.Repository
	gateway    transfer.Gateway
	evaluator  OfferEvaluator
	tracker    *CooldownTracker
	watcher    *CooldownWatcher
	notifier   Notifier
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time

	mu       sync.Mutex
	sessions map[sessionKey]*negotiation.Session
}

func NewNegotiationService(
	clubRepo club.Repository,
	playerRepo player.Repository,
	gateway transfer.Gateway,
	evaluator OfferEvaluator,
	tracker *CooldownTracker,
	watcher *CooldownWatcher,
	notifier Notifier,
	idGen idgen.Generator,
	logger *logging.Logger,
) *NegotiationService {
	if logger == nil {
		logger = logging.Default()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}

	s := &NegotiationService{
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		gateway:    gateway,
		evaluator:  evaluator,
		tracker:    tracker,
		watcher:    watcher,
		notifier:   notifier,
		idGen:      idGen,
		logger:     logger.Named("negotiation"),
		now:        time.Now,
		sessions:   make(map[sessionKey]*negotiation.Session),
	}
	if watcher != nil {
		watcher.OnUnblocked(s.unblock)
	}
	return s
}

func (s *NegotiationService) SubmitOffer(ctx context.Context, input SubmitOfferInput) (result OfferResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NegotiationService.SubmitOffer",
		attribute.Int64("player.id", input.PlayerID), attribute.Int64("offer.amount", input.Amount))
	defer func() { endSpan(span, err) }()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return OfferResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.PlayerID <= 0 {
		return OfferResult{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return OfferResult{}, fmt.Errorf("%w: offer amount must be positive", ErrInvalidInput)
	}

	buyer, target, err := s.loadParties(ctx, input.UserID, input.PlayerID)
	if err != nil {
		return OfferResult{}, err
	}
	if target.OwnedBy(buyer.ID) {
		return OfferResult{}, fmt.Errorf("%w: player already plays for your club", ErrInvalidInput)
	}

	offerID, err := s.idGen.NewID()
	if err != nil {
		return OfferResult{}, fmt.Errorf("generate offer id: %w", err)
	}
	offer := negotiation.Offer{
		ID:          offerID,
		UserID:      input.UserID,
		PlayerID:    input.PlayerID,
		Amount:      input.Amount,
		SubmittedAt: s.now(),
	}

	sess, err := s.enter(ctx, offer)
	if err != nil {
		return OfferResult{}, err
	}

	outcome := s.evaluator.Evaluate(offer, target, buyer.Budget)
	s.logger.InfoContext(ctx, "offer evaluated",
		"offer_id", offer.ID,
		"user_id", offer.UserID,
		"player_id", offer.PlayerID,
		"amount", offer.Amount,
		"outcome", outcome.Kind,
	)

	switch outcome.Kind {
	case negotiation.OutcomeAccepted:
		return s.completeAccepted(ctx, sess, offer, outcome, buyer, target)
	case negotiation.OutcomeRejectedWithCooldown:
		return s.applyCooldown(ctx, sess, offer, outcome)
	default:
		state, err := s.resolve(sess, outcome)
		if err != nil {
			return OfferResult{}, err
		}
		return OfferResult{Offer: offer, Outcome: outcome, State: state, Message: outcomeMessage(outcome)}, nil
	}
}

// GetStatus reconciles the session with the tracker and arms a watch while a
// cooldown is running.
func (s *NegotiationService) GetStatus(ctx context.Context, userID string, playerID int64) (NegotiationStatus, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || playerID <= 0 {
		return NegotiationStatus{}, fmt.Errorf("%w: user id and player id are required", ErrInvalidInput)
	}

	rec, blocked, err := s.tracker.Active(ctx, userID, playerID)
	if err != nil {
		return NegotiationStatus{}, err
	}

	now := s.now()
	key := sessionKey{userID, playerID}

	s.mu.Lock()
	sess, ok := s.sessions[key]
	if !ok {
		sess = negotiation.NewSession(userID, playerID, now)
	}
	switch {
	case blocked && !sess.InCooldown():
		sess.Block(rec.Until, now)
		s.sessions[key] = sess
	case !blocked && sess.InCooldown() && !now.Before(sess.CooldownUntil):
		sess.Unblock(now)
	}
	status := NegotiationStatus{
		PlayerID:      playerID,
		State:         sess.State,
		CooldownUntil: sess.CooldownUntil,
		LastOutcome:   sess.LastOutcome,
	}
	switch {
	case blocked:
		status.RemainingSeconds = rec.RemainingSeconds(now)
	case sess.InCooldown():
		status.RemainingSeconds = cooldown.Record{Until: sess.CooldownUntil}.RemainingSeconds(now)
	}
	s.mu.Unlock()

	if blocked && s.watcher != nil && !s.watcher.Watching(userID, playerID) {
		s.watcher.Watch(rec)
	}
	return status, nil
}

// StopWatching drops the live watch for the pair and forgets the session; the
// stored cooldown stays. A session whose block never reached the store is
// kept so it can still refuse offers until its deadline.
func (s *NegotiationService) StopWatching(ctx context.Context, userID string, playerID int64) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || playerID <= 0 {
		return fmt.Errorf("%w: user id and player id are required", ErrInvalidInput)
	}
	if s.watcher != nil {
		s.watcher.Stop(userID, playerID)
	}

	_, stored, err := s.tracker.Active(ctx, userID, playerID)
	if err != nil {
		return err
	}

	now := s.now()
	key := sessionKey{userID, playerID}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok || sess.State == negotiation.StateOfferSubmitted {
		return nil
	}
	if sess.InCooldown() && !stored && now.Before(sess.CooldownUntil) {
		return nil
	}
	delete(s.sessions, key)
	return nil
}

func (s *NegotiationService) loadParties(ctx context.Context, userID string, playerID int64) (club.Club, player.Player, error) {
	var (
		buyer       club.Club
		target      player.Player
		hasClub     bool
		playerFound bool
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		buyer, hasClub, err = s.clubRepo.GetByManager(ctx, userID)
		if err != nil {
			return fmt.Errorf("get club by manager: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		target, playerFound, err = s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return club.Club{}, player.Player{}, err
	}

	if !hasClub {
		return club.Club{}, player.Player{}, fmt.Errorf("%w: user %s manages no club", ErrForbidden, userID)
	}
	if !playerFound {
		return club.Club{}, player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return buyer, target, nil
}

// enter runs the entry guard and moves the session to OfferSubmitted.
func (s *NegotiationService) enter(ctx context.Context, offer negotiation.Offer) (*negotiation.Session, error) {
	rec, blocked, err := s.tracker.Active(ctx, offer.UserID, offer.PlayerID)
	if err != nil {
		return nil, err
	}

	key := sessionKey{offer.UserID, offer.PlayerID}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok || sess.State == negotiation.StateAccepted {
		sess = negotiation.NewSession(offer.UserID, offer.PlayerID, offer.SubmittedAt)
		s.sessions[key] = sess
	}

	if blocked {
		sess.Block(rec.Until, offer.SubmittedAt)
		return nil, &CooldownError{PlayerID: offer.PlayerID, Until: rec.Until, Remaining: rec.Remaining(offer.SubmittedAt)}
	}
	// Without a stored record the session's own deadline still holds.
	if sess.InCooldown() && !offer.SubmittedAt.Before(sess.CooldownUntil) {
		sess.Unblock(offer.SubmittedAt)
	}

	if err := sess.Submit(offer, offer.SubmittedAt); err != nil {
		switch {
		case errors.Is(err, negotiation.ErrCooldownActive):
			return nil, &CooldownError{PlayerID: offer.PlayerID, Until: sess.CooldownUntil, Remaining: sess.CooldownUntil.Sub(offer.SubmittedAt)}
		case errors.Is(err, negotiation.ErrOfferOutstanding), errors.Is(err, negotiation.ErrInvalidTransition):
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		default:
			return nil, err
		}
	}
	return sess, nil
}

func (s *NegotiationService) resolve(sess *negotiation.Session, outcome negotiation.Outcome) (negotiation.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := sess.Resolve(outcome, s.now())
	if err != nil {
		return state, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return state, nil
}

func (s *NegotiationService) void(sess *negotiation.Session) {
	s.mu.Lock()
	sess.Void(s.now())
	s.mu.Unlock()
}

// completeAccepted applies an accepted offer remotely. The call is not
// retried; a failure voids the offer and leaves the session idle.
func (s *NegotiationService) completeAccepted(
	ctx context.Context,
	sess *negotiation.Session,
	offer negotiation.Offer,
	outcome negotiation.Outcome,
	buyer club.Club,
	target player.Player,
) (OfferResult, error) {
	res, err := s.gateway.CompleteNegotiation(ctx, buyer.ID, target.ID, outcome.FinalPrice)
	if err != nil {
		s.void(sess)
		s.logger.ErrorContext(ctx, "complete negotiated transfer failed", "offer_id", offer.ID, "error", err)
		return OfferResult{}, fmt.Errorf("%w: complete negotiation: %v", ErrDependencyUnavailable, err)
	}
	if !res.OK() {
		s.void(sess)
		return OfferResult{}, &RemoteRejectionError{Operation: "complete_negotiation", Code: res.Code, Message: res.Message}
	}

	state, err := s.resolve(sess, outcome)
	if err != nil {
		return OfferResult{}, err
	}

	s.notify(ctx, notification.Notification{
		UserID:  buyer.ManagerUserID,
		Kind:    notification.KindTransferCompleted,
		Title:   "Transfer completed",
		Message: fmt.Sprintf("%s joined %s for %s", target.Name, buyer.Name, money.Format(outcome.FinalPrice)),
		URL:     fmt.Sprintf("/players/%d", target.ID),
	})
	if !target.IsFreeAgent() {
		if seller, ok, err := s.clubRepo.GetByID(ctx, target.ClubID); err == nil && ok && seller.ManagerUserID != "" {
			s.notify(ctx, notification.Notification{
				UserID:  seller.ManagerUserID,
				Kind:    notification.KindTransferCompleted,
				Title:   "Player sold",
				Message: fmt.Sprintf("%s was sold to %s for %s", target.Name, buyer.Name, money.Format(outcome.FinalPrice)),
			})
		}
	}

	msg := res.Message
	if msg == "" {
		msg = outcomeMessage(outcome)
	}
	return OfferResult{Offer: offer, Outcome: outcome, State: state, Message: msg}, nil
}

func (s *NegotiationService) applyCooldown(ctx context.Context, sess *negotiation.Session, offer negotiation.Offer, outcome negotiation.Outcome) (OfferResult, error) {
	state, err := s.resolve(sess, outcome)
	if err != nil {
		return OfferResult{}, err
	}

	s.mu.Lock()
	sess.Settle()
	s.mu.Unlock()

	rec, err := s.tracker.SetUntil(ctx, offer.UserID, offer.PlayerID, outcome.CooldownUntil)
	if err != nil {
		// the session keeps refusing offers until outcome.CooldownUntil
		s.logger.ErrorContext(ctx, "persist cooldown failed", "user_id", offer.UserID, "player_id", offer.PlayerID, "error", err)
		rec = cooldown.Record{UserID: offer.UserID, PlayerID: offer.PlayerID, Until: outcome.CooldownUntil}
	}
	if s.watcher != nil {
		s.watcher.Watch(rec)
	}

	return OfferResult{Offer: offer, Outcome: outcome, State: state, Message: outcomeMessage(outcome)}, nil
}

func (s *NegotiationService) unblock(rec cooldown.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{rec.UserID, rec.PlayerID}
	sess, ok := s.sessions[key]
	if !ok {
		return
	}
	sess.Unblock(s.now())
	if sess.State == negotiation.StateIdle {
		delete(s.sessions, key)
	}
}

func (s *NegotiationService) notify(ctx context.Context, n notification.Notification) {
	if n.UserID == "" {
		return
	}
	if _, err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "notify failed", "user_id", n.UserID, "kind", n.Kind, "error", err)
	}
}

func outcomeMessage(o negotiation.Outcome) string {
	switch o.Kind {
	case negotiation.OutcomeAccepted:
		return fmt.Sprintf("Offer accepted at %s", money.Format(o.FinalPrice))
	case negotiation.OutcomeCounterOffered:
		return fmt.Sprintf("The club asks for %s", money.Format(o.ProposedPrice))
	case negotiation.OutcomeRejectedSoft:
		return o.Reason
	case negotiation.OutcomeRejectedWithCooldown:
		return "Offer rejected. Negotiations are paused for a while"
	default:
		return ""
	}
}
