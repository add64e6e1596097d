package usecase

import (
	"context"

	"github.com/riskibarqy/transfer-market/internal/domain/notification"
)

// Notifier records a message in a manager's inbox.
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification) (notification.Notification, error)
}

type nopNotifier struct{}

func (nopNotifier) Notify(_ context.Context, n notification.Notification) (notification.Notification, error) {
	return n, nil
}
