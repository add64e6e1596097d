package cache

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/exchange"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	basecache "github.com/riskibarqy/transfer-market/internal/platform/cache"
)

const (
	playerKeyPrefix = "player:"
	clubKeyPrefix   = "club:"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[any]
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store[any]) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	key := playerKeyPrefix + "id:" + strconv.FormatInt(playerID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []int64) ([]player.Player, error) {
	ids := slices.Clone(playerIDs)
	slices.Sort(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	key := playerKeyPrefix + "ids:" + strings.Join(parts, ",")
	return r.loadList(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.GetByIDs(ctx, playerIDs)
	})
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	return r.loadList(ctx, playerKeyPrefix+"list", r.next.List)
}

func (r *PlayerRepository) ListByClub(ctx context.Context, clubID int64) ([]player.Player, error) {
	key := playerKeyPrefix + "club:" + strconv.FormatInt(clubID, 10)
	return r.loadList(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByClub(ctx, clubID)
	})
}

func (r *PlayerRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]player.Player, error)) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return slices.Clone(items), nil
}

type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store[any]
}

func NewClubRepository(next club.Repository, cache *basecache.Store[any]) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	v, err := r.cache.GetOrLoad(ctx, clubKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	return slices.Clone(items), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID int64) (club.Club, bool, error) {
	key := clubKeyPrefix + "id:" + strconv.FormatInt(clubID, 10)
	return r.getOne(ctx, key, func(ctx context.Context) (club.Club, bool, error) {
		return r.next.GetByID(ctx, clubID)
	})
}

func (r *ClubRepository) GetByManager(ctx context.Context, userID string) (club.Club, bool, error) {
	return r.getOne(ctx, clubKeyPrefix+"manager:"+userID, func(ctx context.Context) (club.Club, bool, error) {
		return r.next.GetByManager(ctx, userID)
	})
}

func (r *ClubRepository) getOne(ctx context.Context, key string, load func(context.Context) (club.Club, bool, error)) (club.Club, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

type cachedClub struct {
	value  club.Club
	exists bool
}

// TransferRepository caches only the compensation catalogue; transfers change
// with every response.
type TransferRepository struct {
	transfer.Repository
	cache *basecache.Store[any]
}

func NewTransferRepository(next transfer.Repository, cache *basecache.Store[any]) *TransferRepository {
	return &TransferRepository{Repository: next, cache: cache}
}

func (r *TransferRepository) ListCompensationDirections(ctx context.Context) ([]exchange.CompensationDirection, error) {
	v, err := r.cache.GetOrLoad(ctx, "compensation:list", func(ctx context.Context) (any, error) {
		items, err := r.Repository.ListCompensationDirections(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]exchange.CompensationDirection)
	return slices.Clone(items), nil
}
