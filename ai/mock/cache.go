package mock

import (
	"context"
	"slices"
	"sync"
)

// MockTagCache is an in-memory ai.TagCache.
type MockTagCache struct {
	// GetErr and PutErr, when set, are returned by the corresponding calls.
	GetErr error
	PutErr error

	mu      sync.Mutex
	entries map[uint64][]string
}

// NewMockTagCache creates an empty cache.
func NewMockTagCache() *MockTagCache {
	return &MockTagCache{entries: make(map[uint64][]string)}
}

// GetTags returns the stored tags for key.
func (m *MockTagCache) GetTags(_ context.Context, key uint64) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	tags, ok := m.entries[key]
	return slices.Clone(tags), ok, nil
}

// PutTags stores a copy of tags under key.
func (m *MockTagCache) PutTags(_ context.Context, key uint64, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.entries[key] = slices.Clone(tags)
	return nil
}

// Len returns the number of cached entries.
func (m *MockTagCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
