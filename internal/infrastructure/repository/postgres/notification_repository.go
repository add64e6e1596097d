package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	qb "github.com/riskibarqy/transfer-market/internal/platform/querybuilder"
)

type notificationTableModel struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Kind      string    `db:"kind"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	URL       string    `db:"url"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

func (m notificationTableModel) toDomain() notification.Notification {
	return notification.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Kind:      notification.Kind(m.Kind),
		Title:     m.Title,
		Message:   m.Message,
		URL:       m.URL,
		Read:      m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	insert := qb.InsertInto("notifications").
		Set("user_id", n.UserID).
		Set("kind", string(n.Kind)).
		Set("title", n.Title).
		Set("message", n.Message).
		Set("url", n.URL)
	if !n.CreatedAt.IsZero() {
		insert = insert.Set("created_at", n.CreatedAt)
	}
	query, args, err := insert.Returning("*").ToSQL()
	if err != nil {
		return notification.Notification{}, fmt.Errorf("build insert notification query: %w", err)
	}

	var row notificationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return notification.Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return row.toDomain(), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	query, args, err := qb.Select("*").From("notifications").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query: %w", err)
	}

	var rows []notificationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID string, notificationID int64) (bool, error) {
	query, args, err := qb.Update("notifications").
		Set("is_read", true).
		Where(
			qb.Eq("id", notificationID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build mark notification read query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark notification read rows: %w", err)
	}
	return affected > 0, nil
}
