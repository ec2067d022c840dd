package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory keeps results in process with a per-entry expiration.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates an in-process cache. Expired entries are purged every
// cleanupInterval.
func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	return &Memory{store: gocache.New(ttl, cleanupInterval)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, found := m.store.Get(key)
	if !found {
		return nil, false, nil
	}
	data, ok := value.([]byte)
	return data, ok, nil
}

// Set stores a copy of value under key with the default expiration.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.store.SetDefault(key, append([]byte(nil), value...))
	return nil
}

// Len reports the number of stored entries, including expired ones not yet purged.
func (m *Memory) Len() int {
	return m.store.ItemCount()
}

// Close drops every entry.
func (m *Memory) Close() error {
	m.store.Flush()
	return nil
}
