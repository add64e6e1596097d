package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/notification"
)

type NotificationRepository struct {
	mu     sync.RWMutex
	seq    int64
	byUser map[string][]notification.Notification
	now    func() time.Time
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{
		byUser: make(map[string][]notification.Notification),
		now:    time.Now,
	}
}

func (r *NotificationRepository) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	n.ID = r.seq
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.now()
	}
	r.byUser[n.UserID] = append(r.byUser[n.UserID], n)
	return n, nil
}

// ListByUser returns newest first.
func (r *NotificationRepository) ListByUser(_ context.Context, userID string, limit int) ([]notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byUser[userID]
	out := make([]notification.Notification, 0, min(len(items), max(limit, 0)))
	for i := len(items) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, items[i])
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, userID string, notificationID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.byUser[userID]
	for i := range items {
		if items[i].ID == notificationID {
			items[i].Read = true
			return true, nil
		}
	}
	return false, nil
}
