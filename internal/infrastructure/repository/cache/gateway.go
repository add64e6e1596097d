package cache

import (
	"context"

	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	basecache "github.com/riskibarqy/transfer-market/internal/platform/cache"
)

// Gateway drops cached players and clubs after every mutation that reached the
// store, since any of them may move money or change a roster.
type Gateway struct {
	next  transfer.Gateway
	cache *basecache.Store[any]
}

func NewGateway(next transfer.Gateway, cache *basecache.Store[any]) *Gateway {
	return &Gateway{next: next, cache: cache}
}

func (g *Gateway) PurchaseFreeAgent(ctx context.Context, clubID, playerID int64) (transfer.Result, error) {
	res, err := g.next.PurchaseFreeAgent(ctx, clubID, playerID)
	return g.invalidate(ctx, res, err)
}

func (g *Gateway) PurchaseFromClub(ctx context.Context, clubID, playerID, amount int64) (transfer.Result, error) {
	res, err := g.next.PurchaseFromClub(ctx, clubID, playerID, amount)
	return g.invalidate(ctx, res, err)
}

func (g *Gateway) ProposeExchange(ctx context.Context, req transfer.ExchangeRequest) (transfer.Result, error) {
	res, err := g.next.ProposeExchange(ctx, req)
	return g.invalidate(ctx, res, err)
}

func (g *Gateway) ReleasePlayer(ctx context.Context, clubID, playerID int64) (transfer.Result, error) {
	res, err := g.next.ReleasePlayer(ctx, clubID, playerID)
	return g.invalidate(ctx, res, err)
}

func (g *Gateway) RespondToTransfer(ctx context.Context, transferID int64, kind transfer.Kind, decision transfer.Decision) (transfer.Result, error) {
	res, err := g.next.RespondToTransfer(ctx, transferID, kind, decision)
	return g.invalidate(ctx, res, err)
}

func (g *Gateway) CompleteNegotiation(ctx context.Context, clubID, playerID, price int64) (transfer.Result, error) {
	res, err := g.next.CompleteNegotiation(ctx, clubID, playerID, price)
	return g.invalidate(ctx, res, err)
}

func (g *Gateway) invalidate(ctx context.Context, res transfer.Result, err error) (transfer.Result, error) {
	if err == nil && res.OK() {
		g.cache.DeletePrefix(ctx, playerKeyPrefix)
		g.cache.DeletePrefix(ctx, clubKeyPrefix)
	}
	return res, err
}
