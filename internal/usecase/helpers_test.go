package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
	"github.com/riskibarqy/transfer-market/internal/domain/negotiation"
	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type countingEvaluator struct {
	inner *negotiation.Evaluator
	calls atomic.Int32
}

func newCountingEvaluator() *countingEvaluator {
	return &countingEvaluator{inner: negotiation.NewEvaluator(negotiation.DefaultRules(), func() float64 { return 0.5 })}
}

func (e *countingEvaluator) Evaluate(offer negotiation.Offer, p player.Player, budget int64) negotiation.Outcome {
	e.calls.Add(1)
	return e.inner.Evaluate(offer, p, budget)
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []notification.Notification
	ch    chan notification.Notification
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan notification.Notification, 16)}
}

func (n *recordingNotifier) Notify(_ context.Context, item notification.Notification) (notification.Notification, error) {
	n.mu.Lock()
	n.items = append(n.items, item)
	n.mu.Unlock()
	n.ch <- item
	return item, nil
}

func (n *recordingNotifier) NegotiationUnblocked(ctx context.Context, rec cooldown.Record) error {
	_, err := n.Notify(ctx, notification.Notification{UserID: rec.UserID, Kind: notification.KindNegotiationUnblocked, Title: "unblocked"})
	return err
}

func (n *recordingNotifier) count(kind notification.Kind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, item := range n.items {
		if item.Kind == kind {
			total++
		}
	}
	return total
}

type idSeq struct{ n atomic.Int64 }

func (g *idSeq) NewID() (string, error) {
	return "off_" + time.Duration(g.n.Add(1)).String(), nil
}
