package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
	"github.com/riskibarqy/transfer-market/internal/platform/money"
)

type PurchaseInput struct {
	UserID   string
	PlayerID int64
	Amount   int64
}

type RespondInput struct {
	UserID     string
	TransferID int64
	Decision   string
}

// TransferDetail is a transfer with its clubs and players resolved.
type TransferDetail struct {
	Transfer         transfer.Transfer
	RequestingClub   club.Club
	ReceivingClub    club.Club
	Player           *player.Player
	OfferedPlayers   []player.Player
	RequestedPlayers []player.Player
}

type TransferService struct {
	clubRepo     club.Repository
	playerRepo   player.Repository
	transferRepo transfer.Repository
	gateway      transfer.Gateway
	notifier     Notifier
	band         exchange.PurchaseBand
	logger       *logging.Logger
}

func NewTransferService(
	clubRepo club.Repository,
	playerRepo player.Repository,
	transferRepo transfer.Repository,
	gateway transfer.Gateway,
	notifier Notifier,
	logger *logging.Logger,
) *TransferService {
	if logger == nil {
		logger = logging.Default()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}

	return &TransferService{
		clubRepo:     clubRepo,
		playerRepo:   playerRepo,
		transferRepo: transferRepo,
		gateway:      gateway,
		notifier:     notifier,
		band:         exchange.DefaultPurchaseBand(),
		logger:       logger.Named("transfer"),
	}
}

func (s *TransferService) PurchaseFreeAgent(ctx context.Context, userID string, playerID int64) (res transfer.Result, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.PurchaseFreeAgent")
	defer func() { endSpan(span, err) }()

	buyer, p, err := s.clubAndPlayer(ctx, userID, playerID)
	if err != nil {
		return transfer.Result{}, err
	}
	if !p.IsFreeAgent() {
		return transfer.Result{}, fmt.Errorf("%w: player %d is not a free agent", ErrConflict, playerID)
	}
	if buyer.Budget < p.Valuation.SalePrice {
		return transfer.Result{}, fmt.Errorf("%w: budget %s is below the asking price %s", ErrInvalidInput, money.Format(buyer.Budget), money.Format(p.Valuation.SalePrice))
	}

	res, err = s.gateway.PurchaseFreeAgent(ctx, buyer.ID, p.ID)
	res, err = remoteResult("purchase_free_agent", res, err)
	if err != nil {
		return res, err
	}

	s.notify(ctx, notification.Notification{
		UserID:  buyer.ManagerUserID,
		Kind:    notification.KindPlayerSigned,
		Title:   "Player signed",
		Message: fmt.Sprintf("%s signed for %s", p.Name, money.Format(p.Valuation.SalePrice)),
		URL:     fmt.Sprintf("/players/%d", p.ID),
	})
	return res, nil
}

// PurchaseFromClub sends a purchase request to the owning club. The amount
// must sit inside the purchase band; the store makes the final call.
func (s *TransferService) PurchaseFromClub(ctx context.Context, input PurchaseInput) (res transfer.Result, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.PurchaseFromClub")
	defer func() { endSpan(span, err) }()

	if input.Amount <= 0 {
		return transfer.Result{}, fmt.Errorf("%w: offer amount must be positive", ErrInvalidInput)
	}
	buyer, p, err := s.clubAndPlayer(ctx, input.UserID, input.PlayerID)
	if err != nil {
		return transfer.Result{}, err
	}
	if p.IsFreeAgent() {
		return transfer.Result{}, fmt.Errorf("%w: player %d is a free agent", ErrConflict, p.ID)
	}
	if p.OwnedBy(buyer.ID) {
		return transfer.Result{}, fmt.Errorf("%w: player already plays for your club", ErrInvalidInput)
	}
	if !s.band.Contains(p.Valuation.SalePrice, input.Amount) {
		lo, hi := s.band.Range(p.Valuation.SalePrice)
		return transfer.Result{}, fmt.Errorf("%w: offer must be between %s and %s", ErrInvalidInput, money.Format(lo), money.Format(hi))
	}

	res, err = s.gateway.PurchaseFromClub(ctx, buyer.ID, p.ID, input.Amount)
	res, err = remoteResult("purchase_from_club", res, err)
	if err != nil {
		return res, err
	}

	if seller, ok, err := s.clubRepo.GetByID(ctx, p.ClubID); err == nil && ok {
		s.notify(ctx, notification.Notification{
			UserID:  seller.ManagerUserID,
			Kind:    notification.KindPurchaseRequest,
			Title:   "Purchase request",
			Message: fmt.Sprintf("%s offers %s for %s", buyer.Name, money.Format(input.Amount), p.Name),
			URL:     "/transfers/incoming",
		})
	}
	return res, nil
}

func (s *TransferService) ReleasePlayer(ctx context.Context, userID string, playerID int64) (res transfer.Result, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.ReleasePlayer")
	defer func() { endSpan(span, err) }()

	owner, p, err := s.clubAndPlayer(ctx, userID, playerID)
	if err != nil {
		return transfer.Result{}, err
	}
	if !p.OwnedBy(owner.ID) {
		return transfer.Result{}, fmt.Errorf("%w: player %d does not belong to your club", ErrForbidden, playerID)
	}

	res, err = s.gateway.ReleasePlayer(ctx, owner.ID, p.ID)
	res, err = remoteResult("release_player", res, err)
	if err != nil {
		return res, err
	}

	s.notify(ctx, notification.Notification{
		UserID:  owner.ManagerUserID,
		Kind:    notification.KindPlayerReleased,
		Title:   "Player released",
		Message: fmt.Sprintf("%s left the club. %s credited", p.Name, money.Format(p.Valuation.ReleasePrice)),
	})
	return res, nil
}

// RespondToTransfer lets the receiving club accept or reject a pending request.
func (s *TransferService) RespondToTransfer(ctx context.Context, input RespondInput) (res transfer.Result, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.RespondToTransfer")
	defer func() { endSpan(span, err) }()

	decision, err := transfer.ParseDecision(input.Decision)
	if err != nil {
		return transfer.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	receiver, err := managedClub(ctx, s.clubRepo, input.UserID)
	if err != nil {
		return transfer.Result{}, err
	}
	t, err := s.getTransfer(ctx, input.TransferID)
	if err != nil {
		return transfer.Result{}, err
	}
	if t.ReceivingClubID != receiver.ID {
		return transfer.Result{}, fmt.Errorf("%w: transfer %d is not addressed to your club", ErrForbidden, t.ID)
	}
	if !t.IsPending() {
		return transfer.Result{}, fmt.Errorf("%w: transfer %d is already %s", ErrConflict, t.ID, t.Status)
	}

	res, err = s.gateway.RespondToTransfer(ctx, t.ID, t.Kind, decision)
	res, err = remoteResult("respond_to_transfer", res, err)
	if err != nil {
		return res, err
	}

	if requester, ok, err := s.clubRepo.GetByID(ctx, t.RequestingClubID); err == nil && ok {
		verb := "accepted"
		if decision == transfer.DecisionReject {
			verb = "rejected"
		}
		s.notify(ctx, notification.Notification{
			UserID:  requester.ManagerUserID,
			Kind:    notification.KindTransferResponse,
			Title:   "Transfer " + verb,
			Message: fmt.Sprintf("%s %s your %s request", receiver.Name, verb, t.Kind),
			URL:     fmt.Sprintf("/transfers/%d", t.ID),
		})
	}
	return res, nil
}

// ListIncoming returns the pending requests addressed to the manager's club.
func (s *TransferService) ListIncoming(ctx context.Context, userID string) (_ []TransferDetail, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.ListIncoming")
	defer func() { endSpan(span, err) }()

	receiver, err := managedClub(ctx, s.clubRepo, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.transferRepo.ListPendingByClub(ctx, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("list pending transfers: %w", err)
	}

	out := make([]TransferDetail, len(items))
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError().WithMaxGoroutines(4)
	for i, t := range items {
		p.Go(func(ctx context.Context) error {
			detail, err := s.hydrate(ctx, t)
			if err != nil {
				return err
			}
			out[i] = detail
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTransfer is visible to both clubs involved.
func (s *TransferService) GetTransfer(ctx context.Context, userID string, transferID int64) (TransferDetail, error) {
	c, err := managedClub(ctx, s.clubRepo, userID)
	if err != nil {
		return TransferDetail{}, err
	}
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return TransferDetail{}, err
	}
	if t.RequestingClubID != c.ID && t.ReceivingClubID != c.ID {
		return TransferDetail{}, fmt.Errorf("%w: transfer %d does not involve your club", ErrForbidden, transferID)
	}
	return s.hydrate(ctx, t)
}

func (s *TransferService) getTransfer(ctx context.Context, transferID int64) (transfer.Transfer, error) {
	if transferID <= 0 {
		return transfer.Transfer{}, fmt.Errorf("%w: transfer id is required", ErrInvalidInput)
	}
	t, ok, err := s.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("get transfer: %w", err)
	}
	if !ok {
		return transfer.Transfer{}, fmt.Errorf("%w: transfer=%d", ErrNotFound, transferID)
	}
	return t, nil
}

func (s *TransferService) hydrate(ctx context.Context, t transfer.Transfer) (TransferDetail, error) {
	detail := TransferDetail{Transfer: t}

	requester, _, err := s.clubRepo.GetByID(ctx, t.RequestingClubID)
	if err != nil {
		return TransferDetail{}, fmt.Errorf("get requesting club: %w", err)
	}
	receiver, _, err := s.clubRepo.GetByID(ctx, t.ReceivingClubID)
	if err != nil {
		return TransferDetail{}, fmt.Errorf("get receiving club: %w", err)
	}
	detail.RequestingClub = requester
	detail.ReceivingClub = receiver

	players, err := s.playerRepo.GetByIDs(ctx, t.PlayerIDs())
	if err != nil {
		return TransferDetail{}, fmt.Errorf("get transfer players: %w", err)
	}
	byID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	if p, ok := byID[t.PlayerID]; ok {
		detail.Player = &p
	}
	for _, id := range t.OfferedPlayerIDs {
		if p, ok := byID[id]; ok {
			detail.OfferedPlayers = append(detail.OfferedPlayers, p)
		}
	}
	for _, id := range t.RequestedPlayerIDs {
		if p, ok := byID[id]; ok {
			detail.RequestedPlayers = append(detail.RequestedPlayers, p)
		}
	}
	return detail, nil
}

func (s *TransferService) clubAndPlayer(ctx context.Context, userID string, playerID int64) (club.Club, player.Player, error) {
	if playerID <= 0 {
		return club.Club{}, player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	c, err := managedClub(ctx, s.clubRepo, strings.TrimSpace(userID))
	if err != nil {
		return club.Club{}, player.Player{}, err
	}
	p, ok, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return club.Club{}, player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return club.Club{}, player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return c, p, nil
}

func (s *TransferService) notify(ctx context.Context, n notification.Notification) {
	if n.UserID == "" {
		return
	}
	if _, err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "notify failed", "user_id", n.UserID, "kind", n.Kind, "error", err)
	}
}
