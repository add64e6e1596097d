package memory

import (
	"context"

	"github.com/riskibarqy/transfer-market/internal/domain/player"
)

type PlayerRepository struct {
	market *Market
}

func NewPlayerRepository(market *Market) *PlayerRepository {
	return &PlayerRepository{market: market}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	p, ok := r.market.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []int64) ([]player.Player, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.market.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	out := make([]player.Player, 0, len(r.market.playerOrder))
	for _, id := range r.market.playerOrder {
		out = append(out, r.market.players[id])
	}
	return out, nil
}

func (r *PlayerRepository) ListByClub(_ context.Context, clubID int64) ([]player.Player, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range r.market.playerOrder {
		if p := r.market.players[id]; p.ClubID == clubID {
			out = append(out, p)
		}
	}
	return out, nil
}
