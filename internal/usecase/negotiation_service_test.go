package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
	"github.com/riskibarqy/transfer-market/internal/domain/negotiation"
	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/memory"
	clubmock "github.com/riskibarqy/transfer-market/internal/mocks/domain/club"
	playermock "github.com/riskibarqy/transfer-market/internal/mocks/domain/player"
	transfermock "github.com/riskibarqy/transfer-market/internal/mocks/domain/transfer"
)

// Player 203 is 23 years old rated 88 with a 60M sale price: target 69M,
// accept from 65.55M, counter from 55.2M.
const (
	testManager  = "demo-manager-1"
	testPlayerID = int64(203)
)

type negotiationFixture struct {
	service   *NegotiationService
	evaluator *countingEvaluator
	notifier  *recordingNotifier
	gateway   transfer.Gateway
	tracker   *CooldownTracker
	watcher   *CooldownWatcher
	clock     *fakeClock
}

func newNegotiationFixture(t *testing.T, gateway transfer.Gateway) *negotiationFixture {
	t.Helper()
	return newNegotiationFixtureWithStore(t, gateway, memory.NewCooldownRepository())
}

func newNegotiationFixtureWithStore(t *testing.T, gateway transfer.Gateway, store cooldown.Repository) *negotiationFixture {
	t.Helper()

	market := memory.NewSeededMarket()
	if gateway == nil {
		gateway = memory.NewGateway(market)
	}
	clock := newFakeClock()
	tracker := NewCooldownTracker(store, time.Minute, nil)
	tracker.now = clock.Now
	notifier := newRecordingNotifier()
	watcher := NewCooldownWatcher(tracker, notifier, time.Millisecond, nil)
	t.Cleanup(watcher.Close)
	evaluator := newCountingEvaluator()

	svc := NewNegotiationService(
		memory.NewClubRepository(market),
		memory.NewPlayerRepository(market),
		gateway,
		evaluator,
		tracker,
		watcher,
		notifier,
		&idSeq{},
		nil,
	)
	svc.now = clock.Now

	return &negotiationFixture{
		service:   svc,
		evaluator: evaluator,
		notifier:  notifier,
		gateway:   gateway,
		tracker:   tracker,
		watcher:   watcher,
		clock:     clock,
	}
}

func (f *negotiationFixture) submit(t *testing.T, amount int64) (OfferResult, error) {
	t.Helper()
	return f.service.SubmitOffer(t.Context(), SubmitOfferInput{UserID: testManager, PlayerID: testPlayerID, Amount: amount})
}

func TestNegotiationService_AcceptCompletesTransferOnce(t *testing.T) {
	t.Parallel()

	gateway := transfermock.NewGateway(t)
	gateway.
		On("CompleteNegotiation", mock.Anything, memory.ClubIDAtleticoNorte, testPlayerID, int64(66_000_000)).
		Return(transfer.Result{Code: 0, Message: "Andrés Quintero joins Atletico Norte"}, nil).
		Once()

	f := newNegotiationFixture(t, gateway)
	got, err := f.submit(t, 66_000_000)
	if err != nil {
		t.Fatalf("submit offer: %v", err)
	}
	if got.Outcome.Kind != negotiation.OutcomeAccepted || got.Outcome.FinalPrice != 66_000_000 {
		t.Fatalf("unexpected outcome %+v", got.Outcome)
	}
	if got.State != negotiation.StateAccepted {
		t.Fatalf("expected accepted state, got %s", got.State)
	}
	if got.Offer.ID == "" {
		t.Fatalf("expected offer id to be generated")
	}
	if f.notifier.count(notification.KindTransferCompleted) < 1 {
		t.Fatalf("expected transfer completed notification")
	}
}

func TestNegotiationService_GatewayFailureVoidsOffer(t *testing.T) {
	t.Parallel()

	gateway := transfermock.NewGateway(t)
	gateway.
		On("CompleteNegotiation", mock.Anything, memory.ClubIDAtleticoNorte, testPlayerID, int64(70_000_000)).
		Return(transfer.Result{}, errors.New("connection reset")).
		Once()
	gateway.
		On("CompleteNegotiation", mock.Anything, memory.ClubIDAtleticoNorte, testPlayerID, int64(71_000_000)).
		Return(transfer.Result{Code: transfer.CodeInsufficientBudget, Message: "insufficient budget"}, nil).
		Once()

	f := newNegotiationFixture(t, gateway)

	_, err := f.submit(t, 70_000_000)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	status, err := f.service.GetStatus(t.Context(), testManager, testPlayerID)
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if status.State != negotiation.StateIdle {
		t.Fatalf("expected idle after failed completion, got %s", status.State)
	}

	_, err = f.submit(t, 71_000_000)
	var rejection *RemoteRejectionError
	if !errors.As(err, &rejection) || rejection.Code != transfer.CodeInsufficientBudget {
		t.Fatalf("expected remote rejection, got %v", err)
	}
	if !errors.Is(err, ErrRemoteRejected) {
		t.Fatalf("expected ErrRemoteRejected in chain, got %v", err)
	}
}

func TestNegotiationService_CounterOfferAllowsNextOffer(t *testing.T) {
	t.Parallel()

	f := newNegotiationFixture(t, nil)

	got, err := f.submit(t, 60_000_000)
	if err != nil {
		t.Fatalf("submit offer: %v", err)
	}
	if got.Outcome.Kind != negotiation.OutcomeCounterOffered {
		t.Fatalf("expected counter offer, got %+v", got.Outcome)
	}
	// U = 0.5 puts the factor at 1.00 of the 69M target.
	if got.Outcome.ProposedPrice != 69_000_000 {
		t.Fatalf("unexpected counter price %d", got.Outcome.ProposedPrice)
	}

	got, err = f.submit(t, 56_000_000)
	if err != nil {
		t.Fatalf("second offer after counter: %v", err)
	}
	if got.State != negotiation.StateCounterOffered {
		t.Fatalf("expected another counter, got %s", got.State)
	}
	if calls := f.evaluator.calls.Load(); calls != 2 {
		t.Fatalf("expected two evaluations, got %d", calls)
	}
}

func TestNegotiationService_LowOfferStartsCooldown(t *testing.T) {
	t.Parallel()

	f := newNegotiationFixture(t, nil)

	got, err := f.submit(t, 40_000_000)
	if err != nil {
		t.Fatalf("submit low offer: %v", err)
	}
	if got.Outcome.Kind != negotiation.OutcomeRejectedWithCooldown {
		t.Fatalf("expected cooldown rejection, got %+v", got.Outcome)
	}
	if want := f.clock.Now().Add(time.Minute); !got.Outcome.CooldownUntil.Equal(want) {
		t.Fatalf("cooldown until = %s, want %s", got.Outcome.CooldownUntil, want)
	}
	if !f.watcher.Watching(testManager, testPlayerID) {
		t.Fatalf("expected cooldown watch to be armed")
	}

	f.clock.Advance(20 * time.Second)
	_, err = f.submit(t, 68_000_000)
	var cooldownErr *CooldownError
	if !errors.As(err, &cooldownErr) {
		t.Fatalf("expected cooldown error, got %v", err)
	}
	if cooldownErr.RetryAfterSeconds() != 40 {
		t.Fatalf("expected 40s retry, got %d", cooldownErr.RetryAfterSeconds())
	}
	if calls := f.evaluator.calls.Load(); calls != 1 {
		t.Fatalf("evaluator must not run during cooldown, calls=%d", calls)
	}

	status, err := f.service.GetStatus(t.Context(), testManager, testPlayerID)
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if status.State != negotiation.StateCooldown || status.RemainingSeconds != 40 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestNegotiationService_CooldownExpiryUnblocksSession(t *testing.T) {
	t.Parallel()

	f := newNegotiationFixture(t, nil)

	if _, err := f.submit(t, 10_000_000); err != nil {
		t.Fatalf("submit low offer: %v", err)
	}
	f.clock.Advance(time.Minute)

	require.Eventually(t, func() bool {
		return f.notifier.count(notification.KindNegotiationUnblocked) == 1
	}, 2*time.Second, 5*time.Millisecond)

	status, err := f.service.GetStatus(t.Context(), testManager, testPlayerID)
	require.NoError(t, err)
	require.Equal(t, negotiation.StateIdle, status.State)
	require.Zero(t, status.RemainingSeconds)

	got, err := f.submit(t, 60_000_000)
	require.NoError(t, err)
	require.Equal(t, negotiation.OutcomeCounterOffered, got.Outcome.Kind)
}

type unwritableCooldownStore struct {
	*memory.CooldownRepository
}

func (unwritableCooldownStore) Upsert(context.Context, cooldown.Record) error {
	return errors.New("redis down")
}

func TestNegotiationService_CooldownHoldsWhenStoreWriteFails(t *testing.T) {
	t.Parallel()

	f := newNegotiationFixtureWithStore(t, nil, unwritableCooldownStore{memory.NewCooldownRepository()})

	got, err := f.submit(t, 10_000_000)
	require.NoError(t, err)
	require.Equal(t, negotiation.OutcomeRejectedWithCooldown, got.Outcome.Kind)

	f.clock.Advance(time.Second)
	_, err = f.submit(t, 10_000_000)
	var cooldownErr *CooldownError
	require.ErrorAs(t, err, &cooldownErr)
	require.Equal(t, 59, cooldownErr.RetryAfterSeconds())
	require.EqualValues(t, 1, f.evaluator.calls.Load())

	status, err := f.service.GetStatus(t.Context(), testManager, testPlayerID)
	require.NoError(t, err)
	require.Equal(t, negotiation.StateCooldown, status.State)
	require.Equal(t, 59, status.RemainingSeconds)

	// the session is the only thing holding the block, so it survives unmount
	require.NoError(t, f.service.StopWatching(t.Context(), testManager, testPlayerID))
	_, err = f.submit(t, 10_000_000)
	require.ErrorAs(t, err, &cooldownErr)

	f.clock.Advance(time.Minute)
	got, err = f.submit(t, 60_000_000)
	require.NoError(t, err)
	require.Equal(t, negotiation.OutcomeCounterOffered, got.Outcome.Kind)
}

func TestNegotiationService_SessionsAreReleased(t *testing.T) {
	t.Parallel()

	sessions := func(f *negotiationFixture) int {
		f.service.mu.Lock()
		defer f.service.mu.Unlock()
		return len(f.service.sessions)
	}

	t.Run("stop watching", func(t *testing.T) {
		f := newNegotiationFixture(t, nil)
		if _, err := f.submit(t, 60_000_000); err != nil {
			t.Fatalf("submit offer: %v", err)
		}
		if sessions(f) != 1 {
			t.Fatalf("expected one live session")
		}
		if err := f.service.StopWatching(t.Context(), testManager, testPlayerID); err != nil {
			t.Fatalf("stop watching: %v", err)
		}
		if sessions(f) != 0 {
			t.Fatalf("expected session to be released, have %d", sessions(f))
		}
	})

	t.Run("stop watching during stored cooldown", func(t *testing.T) {
		f := newNegotiationFixture(t, nil)
		if _, err := f.submit(t, 10_000_000); err != nil {
			t.Fatalf("submit offer: %v", err)
		}
		if err := f.service.StopWatching(t.Context(), testManager, testPlayerID); err != nil {
			t.Fatalf("stop watching: %v", err)
		}
		if sessions(f) != 0 {
			t.Fatalf("expected session to be released, have %d", sessions(f))
		}
		var cooldownErr *CooldownError
		if _, err := f.submit(t, 10_000_000); !errors.As(err, &cooldownErr) {
			t.Fatalf("stored cooldown must still refuse offers, got %v", err)
		}
	})

	t.Run("cooldown expiry", func(t *testing.T) {
		f := newNegotiationFixture(t, nil)
		if _, err := f.submit(t, 10_000_000); err != nil {
			t.Fatalf("submit offer: %v", err)
		}
		f.clock.Advance(time.Minute)
		require.Eventually(t, func() bool { return sessions(f) == 0 }, 2*time.Second, 5*time.Millisecond)
	})
}

func TestNegotiationService_OutstandingOfferConflicts(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	entered := make(chan struct{})
	gateway := transfermock.NewGateway(t)
	gateway.
		On("CompleteNegotiation", mock.Anything, memory.ClubIDAtleticoNorte, testPlayerID, int64(69_000_000)).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(transfer.Result{Code: 0, Message: "done"}, nil).
		Once()

	f := newNegotiationFixture(t, gateway)

	errCh := make(chan error, 1)
	go func() {
		_, err := f.submit(t, 69_000_000)
		errCh <- err
	}()
	<-entered

	_, err := f.submit(t, 69_500_000)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict while offer outstanding, got %v", err)
	}

	close(release)
	if err := <-errCh; err != nil {
		t.Fatalf("first offer: %v", err)
	}
}

func TestNegotiationService_RejectsUsersWithoutClub(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubRepo := clubmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	clubRepo.
		On("GetByManager", mock.Anything, "spectator").
		Return(club.Club{}, false, nil).
		Once()
	playerRepo.
		On("GetByID", mock.Anything, testPlayerID).
		Return(player.Player{ID: testPlayerID}, true, nil).
		Once()

	clock := newFakeClock()
	tracker, _ := newTestTracker(clock)
	evaluator := newCountingEvaluator()
	svc := NewNegotiationService(clubRepo, playerRepo, transfermock.NewGateway(t), evaluator, tracker, nil, nil, &idSeq{}, nil)

	_, err := svc.SubmitOffer(ctx, SubmitOfferInput{UserID: "spectator", PlayerID: testPlayerID, Amount: 1000})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if evaluator.calls.Load() != 0 {
		t.Fatalf("evaluator must not run for forbidden users")
	}
}

func TestNegotiationService_SubmitOfferValidation(t *testing.T) {
	t.Parallel()

	f := newNegotiationFixture(t, nil)
	tests := []struct {
		name  string
		input SubmitOfferInput
		want  error
	}{
		{name: "missing user", input: SubmitOfferInput{PlayerID: testPlayerID, Amount: 1}, want: ErrInvalidInput},
		{name: "missing player", input: SubmitOfferInput{UserID: testManager, Amount: 1}, want: ErrInvalidInput},
		{name: "zero amount", input: SubmitOfferInput{UserID: testManager, PlayerID: testPlayerID}, want: ErrInvalidInput},
		{name: "unknown player", input: SubmitOfferInput{UserID: testManager, PlayerID: 9999, Amount: 1}, want: ErrNotFound},
		{name: "own player", input: SubmitOfferInput{UserID: testManager, PlayerID: 102, Amount: 1}, want: ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.SubmitOffer(t.Context(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
