package club

import "context"

// Repository describes club persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, clubID int64) (Club, bool, error)
	GetByManager(ctx context.Context, userID string) (Club, bool, error)
	List(ctx context.Context) ([]Club, error)
}
