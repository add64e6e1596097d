package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

type TransferRepository struct {
	market *Market
}

func NewTransferRepository(market *Market) *TransferRepository {
	return &TransferRepository{market: market}
}

func (r *TransferRepository) GetByID(_ context.Context, transferID int64) (transfer.Transfer, bool, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	t, ok := r.market.transfers[transferID]
	return t, ok, nil
}

func (r *TransferRepository) ListPendingByClub(_ context.Context, clubID int64) ([]transfer.Transfer, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	out := make([]transfer.Transfer, 0)
	for _, t := range r.market.transfers {
		if t.ReceivingClubID == clubID && t.IsPending() {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b transfer.Transfer) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *TransferRepository) ListCompensationDirections(_ context.Context) ([]exchange.CompensationDirection, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	return slices.Clone(r.market.directions), nil
}
