package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []int64) ([]Player, error)
	List(ctx context.Context) ([]Player, error)
	ListByClub(ctx context.Context, clubID int64) ([]Player, error)
}
