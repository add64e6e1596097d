package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

// Gateway applies transfer mutations to a Market with the same {code, message}
// contract as the Postgres stored functions.
type Gateway struct {
	market *Market
}

func NewGateway(market *Market) *Gateway {
	return &Gateway{market: market}
}

func (g *Gateway) PurchaseFreeAgent(_ context.Context, clubID, playerID int64) (transfer.Result, error) {
	m := g.market
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clubs[clubID]
	if !ok {
		return transfer.Failed(transfer.CodeNotFound, "club not found"), nil
	}
	p, ok := m.players[playerID]
	if !ok {
		return transfer.Failed(transfer.CodeNotFound, "player not found"), nil
	}
	if !p.IsFreeAgent() {
		return transfer.Failed(transfer.CodeNotOwner, "player is not a free agent"), nil
	}
	if c.Budget < p.Valuation.SalePrice {
		return transfer.Failed(transfer.CodeInsufficientBudget, "insufficient budget"), nil
	}

	c.Budget -= p.Valuation.SalePrice
	p.ClubID = c.ID
	m.clubs[c.ID] = c
	m.players[p.ID] = p
	return transfer.Succeeded(fmt.Sprintf("%s signed for %s", p.Name, c.Name)), nil
}

func (g *Gateway) PurchaseFromClub(_ context.Context, clubID, playerID, amount int64) (transfer.Result, error) {
	m := g.market
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clubs[clubID]
	if !ok {
		return transfer.Failed(transfer.CodeNotFound, "club not found"), nil
	}
	p, ok := m.players[playerID]
	if !ok || p.IsFreeAgent() {
		return transfer.Failed(transfer.CodeNotFound, "player not found in any club"), nil
	}
	if p.ClubID == clubID {
		return transfer.Failed(transfer.CodeInvalidRequest, "player already belongs to your club"), nil
	}
	if amount <= 0 {
		return transfer.Failed(transfer.CodeInvalidRequest, "offer must be positive"), nil
	}
	if c.Budget < amount {
		return transfer.Failed(transfer.CodeInsufficientBudget, "insufficient budget"), nil
	}

	m.addTransfer(transfer.Transfer{
		Kind:             transfer.KindPurchase,
		RequestingClubID: clubID,
		ReceivingClubID:  p.ClubID,
		PlayerID:         playerID,
		Amount:           amount,
	})
	return transfer.Succeeded("purchase request sent"), nil
}

func (g *Gateway) ProposeExchange(_ context.Context, req transfer.ExchangeRequest) (transfer.Result, error) {
	m := g.market
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clubs[req.RequestingClubID]; !ok {
		return transfer.Failed(transfer.CodeNotFound, "club not found"), nil
	}
	if _, ok := m.clubs[req.CounterpartyClubID]; !ok {
		return transfer.Failed(transfer.CodeNotFound, "counterparty club not found"), nil
	}
	if len(req.OfferedPlayerIDs) == 0 || len(req.RequestedPlayerIDs) == 0 {
		return transfer.Failed(transfer.CodeInvalidRequest, "both sides need players"), nil
	}
	for _, id := range req.OfferedPlayerIDs {
		if p, ok := m.players[id]; !ok || p.ClubID != req.RequestingClubID {
			return transfer.Failed(transfer.CodeNotOwner, fmt.Sprintf("player %d is not in your squad", id)), nil
		}
	}
	for _, id := range req.RequestedPlayerIDs {
		if p, ok := m.players[id]; !ok || p.ClubID != req.CounterpartyClubID {
			return transfer.Failed(transfer.CodeNotOwner, fmt.Sprintf("player %d is not in the counterparty squad", id)), nil
		}
	}
	direction, ok := m.direction(req.CompensationDirectionID)
	if !ok {
		return transfer.Failed(transfer.CodeInvalidRequest, "unknown compensation direction"), nil
	}
	if err := exchange.ValidateCompensation(direction.Kind, req.CompensationAmount); err != nil {
		return transfer.Failed(transfer.CodeInvalidRequest, err.Error()), nil
	}

	m.addTransfer(transfer.Transfer{
		Kind:                    transfer.KindExchange,
		RequestingClubID:        req.RequestingClubID,
		ReceivingClubID:         req.CounterpartyClubID,
		OfferedPlayerIDs:        slices.Clone(req.OfferedPlayerIDs),
		RequestedPlayerIDs:      slices.Clone(req.RequestedPlayerIDs),
		CompensationDirectionID: req.CompensationDirectionID,
		CompensationAmount:      req.CompensationAmount,
	})
	return transfer.Succeeded("exchange request sent"), nil
}

func (g *Gateway) ReleasePlayer(_ context.Context, clubID, playerID int64) (transfer.Result, error) {
	m := g.market
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clubs[clubID]
	if !ok {
		return transfer.Failed(transfer.CodeNotFound, "club not found"), nil
	}
	p, ok := m.players[playerID]
	if !ok {
		return transfer.Failed(transfer.CodeNotFound, "player not found"), nil
	}
	if !p.OwnedBy(clubID) {
		return transfer.Failed(transfer.CodeNotOwner, "player does not belong to your club"), nil
	}

	c.Budget += p.Valuation.ReleasePrice
	p.ClubID = 0
	m.clubs[c.ID] = c
	m.players[p.ID] = p
	return transfer.Succeeded(fmt.Sprintf("%s released", p.Name)), nil
}

func (g *Gateway) RespondToTransfer(_ context.Context, transferID int64, kind transfer.Kind, decision transfer.Decision) (transfer.Result, error) {
	m := g.market
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transfers[transferID]
	if !ok || t.Kind != kind {
		return transfer.Failed(transfer.CodeNotFound, "transfer not found"), nil
	}
	if !t.IsPending() {
		return transfer.Failed(transfer.CodeNotPending, "transfer already resolved"), nil
	}

	resolvedAt := m.now()
	t.ResolvedAt = &resolvedAt
	if decision == transfer.DecisionReject {
		t.Status = transfer.StatusRejected
		m.transfers[t.ID] = t
		return transfer.Succeeded("transfer rejected"), nil
	}

	var res transfer.Result
	switch t.Kind {
	case transfer.KindPurchase:
		res = m.settlePurchase(t)
	case transfer.KindExchange:
		res = m.settleExchange(t)
	default:
		res = transfer.Failed(transfer.CodeInvalidRequest, "unknown transfer kind")
	}
	if !res.OK() {
		return res, nil
	}

	t.Status = transfer.StatusAccepted
	m.transfers[t.ID] = t
	return res, nil
}

func (g *Gateway) CompleteNegotiation(_ context.Context, clubID, playerID, price int64) (transfer.Result, error) {
	m := g.market
	m.mu.Lock()
	defer m.mu.Unlock()

	buyer, ok := m.clubs[clubID]
	if !ok {
		return transfer.Failed(transfer.CodeNotFound, "club not found"), nil
	}
	p, ok := m.players[playerID]
	if !ok {
		return transfer.Failed(transfer.CodeNotFound, "player not found"), nil
	}
	if p.ClubID == clubID {
		return transfer.Failed(transfer.CodeInvalidRequest, "player already belongs to your club"), nil
	}
	if buyer.Budget < price {
		return transfer.Failed(transfer.CodeInsufficientBudget, "insufficient budget"), nil
	}

	if seller, ok := m.clubs[p.ClubID]; ok {
		seller.Budget += price
		m.clubs[seller.ID] = seller
	}
	buyer.Budget -= price
	p.ClubID = buyer.ID
	m.clubs[buyer.ID] = buyer
	m.players[p.ID] = p
	return transfer.Succeeded(fmt.Sprintf("%s joins %s", p.Name, buyer.Name)), nil
}

// settlePurchase and settleExchange run with the market lock held.
func (m *Market) settlePurchase(t transfer.Transfer) transfer.Result {
	buyer, ok := m.clubs[t.RequestingClubID]
	if !ok {
		return transfer.Failed(transfer.CodeNotFound, "club not found")
	}
	seller := m.clubs[t.ReceivingClubID]
	p, ok := m.players[t.PlayerID]
	if !ok || p.ClubID != seller.ID {
		return transfer.Failed(transfer.CodeNotOwner, "player no longer belongs to the receiving club")
	}
	if buyer.Budget < t.Amount {
		return transfer.Failed(transfer.CodeInsufficientBudget, "requesting club cannot afford the transfer")
	}

	buyer.Budget -= t.Amount
	seller.Budget += t.Amount
	p.ClubID = buyer.ID
	m.clubs[buyer.ID] = buyer
	m.clubs[seller.ID] = seller
	m.players[p.ID] = p
	return transfer.Succeeded("purchase accepted")
}

func (m *Market) settleExchange(t transfer.Transfer) transfer.Result {
	requester, ok := m.clubs[t.RequestingClubID]
	if !ok {
		return transfer.Failed(transfer.CodeNotFound, "club not found")
	}
	receiver := m.clubs[t.ReceivingClubID]

	for _, id := range t.OfferedPlayerIDs {
		if m.players[id].ClubID != requester.ID {
			return transfer.Failed(transfer.CodeNotOwner, "offered players changed clubs")
		}
	}
	for _, id := range t.RequestedPlayerIDs {
		if m.players[id].ClubID != receiver.ID {
			return transfer.Failed(transfer.CodeNotOwner, "requested players changed clubs")
		}
	}

	direction, known := m.direction(t.CompensationDirectionID)
	payer, payee := &requester, &receiver
	if direction.Kind == exchange.DirectionReceiverPays {
		payer, payee = &receiver, &requester
	}
	if known && direction.Kind != exchange.DirectionNone {
		if payer.Budget < t.CompensationAmount {
			return transfer.Failed(transfer.CodeInsufficientBudget, "compensation exceeds budget")
		}
		payer.Budget -= t.CompensationAmount
		payee.Budget += t.CompensationAmount
	}

	for _, id := range t.OfferedPlayerIDs {
		p := m.players[id]
		p.ClubID = receiver.ID
		m.players[id] = p
	}
	for _, id := range t.RequestedPlayerIDs {
		p := m.players[id]
		p.ClubID = requester.ID
		m.players[id] = p
	}
	m.clubs[requester.ID] = requester
	m.clubs[receiver.ID] = receiver
	return transfer.Succeeded("exchange accepted")
}
