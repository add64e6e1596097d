package notification

import "context"

// Repository describes notification persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID string, notificationID int64) (bool, error)
}
