package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/transfer-market/internal/domain/preference"
)

// PreferenceStore is the non-durable fallback used when no sqlite path is set.
type PreferenceStore struct {
	mu    sync.RWMutex
	items map[string]preference.Preferences
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{items: make(map[string]preference.Preferences)}
}

func (s *PreferenceStore) Get(_ context.Context, userID string) (preference.Preferences, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[userID]
	return p, ok, nil
}

func (s *PreferenceStore) Save(_ context.Context, prefs preference.Preferences) error {
	if prefs.SchemaVersion > preference.CurrentSchemaVersion {
		return preference.ErrUnsupportedSchema
	}
	prefs.SchemaVersion = preference.CurrentSchemaVersion

	s.mu.Lock()
	s.items[prefs.UserID] = prefs
	s.mu.Unlock()
	return nil
}

func (s *PreferenceStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.items, userID)
	s.mu.Unlock()
	return nil
}
