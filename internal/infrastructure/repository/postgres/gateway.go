package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
)

// Gateway calls the market stored functions. Each call is a single statement
// so the database owns the transaction; nothing here retries.
type Gateway struct {
	db *sqlx.DB
}

func NewGateway(db *sqlx.DB) *Gateway {
	return &Gateway{db: db}
}

func (g *Gateway) PurchaseFreeAgent(ctx context.Context, clubID, playerID int64) (transfer.Result, error) {
	return g.call(ctx, "fn_purchase_free_agent", `SELECT code, message FROM fn_purchase_free_agent($1, $2)`, clubID, playerID)
}

func (g *Gateway) PurchaseFromClub(ctx context.Context, clubID, playerID, amount int64) (transfer.Result, error) {
	return g.call(ctx, "fn_purchase_from_club", `SELECT code, message FROM fn_purchase_from_club($1, $2, $3)`, clubID, playerID, amount)
}

func (g *Gateway) ProposeExchange(ctx context.Context, req transfer.ExchangeRequest) (transfer.Result, error) {
	return g.call(ctx, "fn_propose_exchange",
		`SELECT code, message FROM fn_propose_exchange($1, $2, $3, $4, $5, $6)`,
		req.RequestingClubID,
		req.CounterpartyClubID,
		pq.Array(req.OfferedPlayerIDs),
		pq.Array(req.RequestedPlayerIDs),
		req.CompensationDirectionID,
		req.CompensationAmount,
	)
}

func (g *Gateway) ReleasePlayer(ctx context.Context, clubID, playerID int64) (transfer.Result, error) {
	return g.call(ctx, "fn_release_player", `SELECT code, message FROM fn_release_player($1, $2)`, clubID, playerID)
}

// RespondToTransfer picks the purchase or exchange function by kind.
func (g *Gateway) RespondToTransfer(ctx context.Context, transferID int64, kind transfer.Kind, decision transfer.Decision) (transfer.Result, error) {
	switch kind {
	case transfer.KindPurchase:
		return g.call(ctx, "fn_respond_purchase", `SELECT code, message FROM fn_respond_purchase($1, $2)`, transferID, decision.StateCode())
	case transfer.KindExchange:
		return g.call(ctx, "fn_respond_exchange", `SELECT code, message FROM fn_respond_exchange($1, $2)`, transferID, decision.StateCode())
	default:
		return transfer.Result{}, fmt.Errorf("unknown transfer kind %q", kind)
	}
}

func (g *Gateway) CompleteNegotiation(ctx context.Context, clubID, playerID, price int64) (transfer.Result, error) {
	return g.call(ctx, "fn_complete_negotiation", `SELECT code, message FROM fn_complete_negotiation($1, $2, $3)`, clubID, playerID, price)
}

func (g *Gateway) call(ctx context.Context, fn, query string, args ...any) (transfer.Result, error) {
	var row resultRow
	if err := g.db.GetContext(ctx, &row, query, args...); err != nil {
		return transfer.Result{}, fmt.Errorf("call %s: %w", fn, err)
	}
	return row.toDomain(), nil
}
