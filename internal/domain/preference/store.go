package preference

import "context"

// Store persists preferences per user.
type Store interface {
	Get(ctx context.Context, userID string) (Preferences, bool, error)
	Save(ctx context.Context, prefs Preferences) error
	Delete(ctx context.Context, userID string) error
}
