package memory

import (
	"context"
	"strings"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
)

type ClubRepository struct {
	market *Market
}

func NewClubRepository(market *Market) *ClubRepository {
	return &ClubRepository{market: market}
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	out := make([]club.Club, 0, len(r.market.clubOrder))
	for _, id := range r.market.clubOrder {
		out = append(out, r.market.clubs[id])
	}
	return out, nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID int64) (club.Club, bool, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	c, ok := r.market.clubs[clubID]
	return c, ok, nil
}

func (r *ClubRepository) GetByManager(_ context.Context, userID string) (club.Club, bool, error) {
	r.market.mu.RLock()
	defer r.market.mu.RUnlock()

	userID = strings.TrimSpace(userID)
	for _, id := range r.market.clubOrder {
		if c := r.market.clubs[id]; c.ManagedBy(userID) {
			return c, true, nil
		}
	}
	return club.Club{}, false, nil
}
