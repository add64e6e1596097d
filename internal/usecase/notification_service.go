package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
	deliveryTimeout          = 10 * time.Second
)

// NotificationSender pushes a stored notification to an outside channel.
type NotificationSender interface {
	Send(ctx context.Context, n notification.Notification) error
}

type NotificationService struct {
	repo       notification.Repository
	playerRepo player.Repository
	sender     NotificationSender
	workers    *ants.Pool
	logger     *logging.Logger
	now        func() time.Time
}

// NewNotificationService delivers through sender on a pool of workers. A nil
// sender keeps notifications inbox-only.
func NewNotificationService(
	repo notification.Repository,
	playerRepo player.Repository,
	sender NotificationSender,
	workers int,
	logger *logging.Logger,
) (*NotificationService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = 1
	}

	s := &NotificationService{
		repo:       repo,
		playerRepo: playerRepo,
		sender:     sender,
		logger:     logger.Named("notification"),
		now:        time.Now,
	}
	if sender != nil {
		pool, err := ants.NewPool(workers, ants.WithNonblocking(true), ants.WithPanicHandler(func(p any) {
			s.logger.Error("notification delivery panicked", "panic", p)
		}))
		if err != nil {
			return nil, fmt.Errorf("create notification worker pool: %w", err)
		}
		s.workers = pool
	}
	return s, nil
}

func (s *NotificationService) Notify(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	n.UserID = strings.TrimSpace(n.UserID)
	n.Title = strings.TrimSpace(n.Title)
	if err := n.Validate(); err != nil {
		return notification.Notification{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	stored, err := s.repo.Create(ctx, n)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("create notification: %w", err)
	}
	s.deliver(ctx, stored)
	return stored, nil
}

// deliver hands the notification to the worker pool; the inbox copy is the
// source of truth so a full pool only costs the push.
func (s *NotificationService) deliver(ctx context.Context, n notification.Notification) {
	if s.workers == nil {
		return
	}

	sendCtx := context.WithoutCancel(ctx)
	err := s.workers.Submit(func() {
		ctx, cancel := context.WithTimeout(sendCtx, deliveryTimeout)
		defer cancel()
		if err := s.sender.Send(ctx, n); err != nil {
			s.logger.WarnContext(ctx, "deliver notification failed", "notification_id", n.ID, "user_id", n.UserID, "error", err)
		}
	})
	if err != nil {
		s.logger.WarnContext(ctx, "notification delivery skipped", "notification_id", n.ID, "error", err)
	}
}

func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	switch {
	case limit <= 0:
		limit = defaultNotificationLimit
	case limit > maxNotificationLimit:
		limit = maxNotificationLimit
	}

	items, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID string, notificationID int64) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || notificationID <= 0 {
		return fmt.Errorf("%w: user id and notification id are required", ErrInvalidInput)
	}

	ok, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: notification=%d", ErrNotFound, notificationID)
	}
	return nil
}

// NegotiationUnblocked is called by the cooldown watcher once per expiry.
func (s *NotificationService) NegotiationUnblocked(ctx context.Context, rec cooldown.Record) error {
	name := fmt.Sprintf("player %d", rec.PlayerID)
	if s.playerRepo != nil {
		if p, ok, err := s.playerRepo.GetByID(ctx, rec.PlayerID); err == nil && ok {
			name = p.Name
		}
	}

	_, err := s.Notify(ctx, notification.Notification{
		UserID:  rec.UserID,
		Kind:    notification.KindNegotiationUnblocked,
		Title:   "Negotiation available",
		Message: fmt.Sprintf("You can make a new offer for %s", name),
		URL:     fmt.Sprintf("/players/%d", rec.PlayerID),
	})
	return err
}

// Close waits briefly for queued deliveries and releases the pool.
func (s *NotificationService) Close() {
	if s.workers == nil {
		return
	}
	if err := s.workers.ReleaseTimeout(5 * time.Second); err != nil {
		s.logger.Warn("notification workers did not drain", "error", err)
	}
}
