package transfer

import (
	"context"

	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
)

// Repository reads transfer records owned by the remote store.
type Repository interface {
	GetByID(ctx context.Context, transferID int64) (Transfer, bool, error)
	ListPendingByClub(ctx context.Context, clubID int64) ([]Transfer, error)
	ListCompensationDirections(ctx context.Context) ([]exchange.CompensationDirection, error)
}

// ExchangeRequest is the wire shape of an exchange proposal.
type ExchangeRequest struct {
	RequestingClubID        int64
	CounterpartyClubID      int64
	OfferedPlayerIDs        []int64
	RequestedPlayerIDs      []int64
	CompensationDirectionID int64
	CompensationAmount      int64
}

func ExchangeRequestFromProposal(p exchange.Proposal) ExchangeRequest {
	return ExchangeRequest{
		RequestingClubID:        p.RequestingClubID,
		CounterpartyClubID:      p.CounterpartyClubID,
		OfferedPlayerIDs:        append([]int64(nil), p.OfferedPlayerIDs...),
		RequestedPlayerIDs:      append([]int64(nil), p.RequestedPlayerIDs...),
		CompensationDirectionID: p.CompensationDirection.ID,
		CompensationAmount:      p.CompensationAmount,
	}
}

// Gateway performs the mutations the remote store is the authority on.
// Calls are never retried by callers.
type Gateway interface {
	PurchaseFreeAgent(ctx context.Context, clubID, playerID int64) (Result, error)
	PurchaseFromClub(ctx context.Context, clubID, playerID, amount int64) (Result, error)
	ProposeExchange(ctx context.Context, req ExchangeRequest) (Result, error)
	ReleasePlayer(ctx context.Context, clubID, playerID int64) (Result, error)
	RespondToTransfer(ctx context.Context, transferID int64, kind Kind, decision Decision) (Result, error)
	CompleteNegotiation(ctx context.Context, clubID, playerID, price int64) (Result, error)
}
