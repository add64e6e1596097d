package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
	"github.com/riskibarqy/transfer-market/internal/platform/money"
)

type ProposeExchangeInput struct {
	UserID                  string
	CounterpartyClubID      int64
	OfferedCount            int
	RequestedCount          int
	OfferedPlayerIDs        []int64
	RequestedPlayerIDs      []int64
	CompensationDirectionID int64
	CompensationAmount      int64
}

type ExchangeService struct {
	clubRepo     club.Repository
	playerRepo   player.Repository
	transferRepo transfer.Repository
	gateway      transfer.Gateway
	notifier     Notifier
	logger       *logging.Logger
}

func NewExchangeService(
	clubRepo club.Repository,
	playerRepo player.Repository,
	transferRepo transfer.Repository,
	gateway transfer.Gateway,
	notifier Notifier,
	logger *logging.Logger,
) *ExchangeService {
	if logger == nil {
		logger = logging.Default()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}

	return &ExchangeService{
		clubRepo:     clubRepo,
		playerRepo:   playerRepo,
		transferRepo: transferRepo,
		gateway:      gateway,
		notifier:     notifier,
		logger:       logger.Named("exchange"),
	}
}

func (s *ExchangeService) ListCompensationDirections(ctx context.Context) ([]exchange.CompensationDirection, error) {
	items, err := s.transferRepo.ListCompensationDirections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list compensation directions: %w", err)
	}
	return items, nil
}

// ProposeExchange walks the exchange builder with the declared counts and the
// submitted selection, then sends the proposal once. A selection that does not
// match its declared count is rejected before the gateway is called. Nothing is
// retried.
func (s *ExchangeService) ProposeExchange(ctx context.Context, input ProposeExchangeInput) (res transfer.Result, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExchangeService.ProposeExchange")
	defer func() { endSpan(span, err) }()

	requester, err := managedClub(ctx, s.clubRepo, input.UserID)
	if err != nil {
		return transfer.Result{}, err
	}
	counterparty, ok, err := s.clubRepo.GetByID(ctx, input.CounterpartyClubID)
	if err != nil {
		return transfer.Result{}, fmt.Errorf("get counterparty club: %w", err)
	}
	if !ok {
		return transfer.Result{}, fmt.Errorf("%w: club=%d", ErrNotFound, input.CounterpartyClubID)
	}
	direction, err := s.findDirection(ctx, input.CompensationDirectionID)
	if err != nil {
		return transfer.Result{}, err
	}

	proposal, err := buildProposal(requester.ID, counterparty.ID, input, direction)
	if err != nil {
		return transfer.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.checkOwnership(ctx, proposal); err != nil {
		return transfer.Result{}, err
	}

	res, err = s.gateway.ProposeExchange(ctx, transfer.ExchangeRequestFromProposal(proposal))
	res, err = remoteResult("propose_exchange", res, err)
	if err != nil {
		return res, err
	}

	msg := fmt.Sprintf("%s proposes a %d-for-%d player exchange", requester.Name, len(proposal.OfferedPlayerIDs), len(proposal.RequestedPlayerIDs))
	if proposal.CompensationAmount > 0 {
		msg += fmt.Sprintf(" with %s compensation (%s)", money.Format(proposal.CompensationAmount), direction.Name)
	}
	if counterparty.ManagerUserID != "" {
		if _, err := s.notifier.Notify(ctx, notification.Notification{
			UserID:  counterparty.ManagerUserID,
			Kind:    notification.KindExchangeRequest,
			Title:   "Exchange request",
			Message: msg,
			URL:     "/transfers/incoming",
		}); err != nil {
			s.logger.WarnContext(ctx, "notify exchange request failed", "club_id", counterparty.ID, "error", err)
		}
	}
	return res, nil
}

func buildProposal(requesterID, counterpartyID int64, input ProposeExchangeInput, direction exchange.CompensationDirection) (exchange.Proposal, error) {
	b := exchange.NewBuilder(requesterID)
	if err := b.SelectType(exchange.TypeExchange); err != nil {
		return exchange.Proposal{}, err
	}
	if err := b.SelectCounterparty(counterpartyID); err != nil {
		return exchange.Proposal{}, err
	}
	if err := b.DeclareCounts(input.OfferedCount, input.RequestedCount); err != nil {
		return exchange.Proposal{}, err
	}
	for _, side := range [][]int64{input.OfferedPlayerIDs, input.RequestedPlayerIDs} {
		if hasDuplicates(side) {
			return exchange.Proposal{}, fmt.Errorf("duplicate player in selection")
		}
	}
	for _, id := range input.OfferedPlayerIDs {
		if err := b.ToggleOffered(id); err != nil {
			return exchange.Proposal{}, err
		}
	}
	for _, id := range input.RequestedPlayerIDs {
		if err := b.ToggleRequested(id); err != nil {
			return exchange.Proposal{}, err
		}
	}
	if err := b.SetCompensation(direction, input.CompensationAmount); err != nil {
		return exchange.Proposal{}, err
	}
	return b.Build()
}

func (s *ExchangeService) findDirection(ctx context.Context, directionID int64) (exchange.CompensationDirection, error) {
	if directionID <= 0 {
		return exchange.CompensationDirection{}, fmt.Errorf("%w: %v", ErrInvalidInput, exchange.ErrCompensationRequired)
	}
	items, err := s.ListCompensationDirections(ctx)
	if err != nil {
		return exchange.CompensationDirection{}, err
	}
	idx := slices.IndexFunc(items, func(d exchange.CompensationDirection) bool { return d.ID == directionID })
	if idx < 0 {
		return exchange.CompensationDirection{}, fmt.Errorf("%w: unknown compensation direction %d", ErrInvalidInput, directionID)
	}
	return items[idx], nil
}

func (s *ExchangeService) checkOwnership(ctx context.Context, p exchange.Proposal) error {
	ids := append(slices.Clone(p.OfferedPlayerIDs), p.RequestedPlayerIDs...)
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("get exchange players: %w", err)
	}

	owner := make(map[int64]int64, len(players))
	for _, pl := range players {
		owner[pl.ID] = pl.ClubID
	}
	for _, id := range p.OfferedPlayerIDs {
		if clubID, ok := owner[id]; !ok || clubID != p.RequestingClubID {
			return fmt.Errorf("%w: player %d is not in your squad", ErrInvalidInput, id)
		}
	}
	for _, id := range p.RequestedPlayerIDs {
		if clubID, ok := owner[id]; !ok || clubID != p.CounterpartyClubID {
			return fmt.Errorf("%w: player %d is not in the counterparty squad", ErrInvalidInput, id)
		}
	}
	return nil
}

func hasDuplicates(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
