package csrf

import (
	"context"
	"sync"
	"time"
)

// TokenStore persists CSRF tokens keyed by user ID
type TokenStore interface {
	// Get returns the stored token, or "" when none exists or it expired.
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, token string, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore is an in-process token store for single-instance deployments
// and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates a new in-memory token store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the stored token if present and not expired
func (s *MemoryStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[userID]
	s.mu.RUnlock()

	if !ok {
		return "", nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, userID)
		s.mu.Unlock()
		return "", nil
	}
	return entry.token, nil
}

// Set stores a token with the given TTL
func (s *MemoryStore) Set(_ context.Context, userID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = memoryEntry{
		token:     token,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a stored token
func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}
