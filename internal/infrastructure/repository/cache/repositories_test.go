package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	clubmock "github.com/riskibarqy/transfer-market/internal/mocks/domain/club"
	playermock "github.com/riskibarqy/transfer-market/internal/mocks/domain/player"
	transfermock "github.com/riskibarqy/transfer-market/internal/mocks/domain/transfer"
	basecache "github.com/riskibarqy/transfer-market/internal/platform/cache"
)

func TestPlayerRepository_GetByIDCachesMisses(t *testing.T) {
	t.Parallel()

	next := playermock.NewRepository(t)
	next.On("GetByID", mock.Anything, int64(9)).Return(player.Player{}, false, nil).Once()

	repo := NewPlayerRepository(next, basecache.NewStore[any](time.Minute))
	for range 3 {
		_, ok, err := repo.GetByID(t.Context(), 9)
		if err != nil || ok {
			t.Fatalf("expected cached miss, got ok=%v err=%v", ok, err)
		}
	}
}

func TestPlayerRepository_ListReturnsCopies(t *testing.T) {
	t.Parallel()

	next := playermock.NewRepository(t)
	next.On("ListByClub", mock.Anything, int64(1)).Return([]player.Player{{ID: 101, Name: "Iker"}}, nil).Once()

	repo := NewPlayerRepository(next, basecache.NewStore[any](time.Minute))
	first, err := repo.ListByClub(t.Context(), 1)
	if err != nil {
		t.Fatalf("list by club: %v", err)
	}
	first[0].Name = "mutated"

	second, err := repo.ListByClub(t.Context(), 1)
	if err != nil {
		t.Fatalf("list by club: %v", err)
	}
	if second[0].Name != "Iker" {
		t.Fatalf("cached slice leaked a caller mutation: %q", second[0].Name)
	}
}

func TestGateway_SuccessfulMutationInvalidatesClubs(t *testing.T) {
	t.Parallel()

	store := basecache.NewStore[any](time.Minute)
	clubs := clubmock.NewRepository(t)
	clubs.On("GetByManager", mock.Anything, "demo-manager-1").Return(club.Club{ID: 1, Budget: 100}, true, nil).Once()
	clubs.On("GetByManager", mock.Anything, "demo-manager-1").Return(club.Club{ID: 1, Budget: 80}, true, nil).Once()

	next := transfermock.NewGateway(t)
	next.On("PurchaseFreeAgent", mock.Anything, int64(1), int64(501)).Return(transfer.Result{Code: 1, Message: "insufficient budget"}, nil).Once()
	next.On("PurchaseFreeAgent", mock.Anything, int64(1), int64(502)).Return(transfer.Result{Message: "player signed"}, nil).Once()

	repo := NewClubRepository(clubs, store)
	gateway := NewGateway(next, store)
	ctx := context.Background()

	budget := func() int64 {
		c, _, err := repo.GetByManager(ctx, "demo-manager-1")
		if err != nil {
			t.Fatalf("get by manager: %v", err)
		}
		return c.Budget
	}

	if got := budget(); got != 100 {
		t.Fatalf("unexpected budget %d", got)
	}
	if _, err := gateway.PurchaseFreeAgent(ctx, 1, 501); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if got := budget(); got != 100 {
		t.Fatalf("rejected purchase must keep the cache, got %d", got)
	}
	if _, err := gateway.PurchaseFreeAgent(ctx, 1, 502); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if got := budget(); got != 80 {
		t.Fatalf("expected refreshed budget after purchase, got %d", got)
	}
}
