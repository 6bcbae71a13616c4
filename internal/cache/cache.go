// Package cache holds the client's local key/value state. Values are opaque
// strings, normally JSON documents written by the sync engine.
package cache

import "sync"

// Cache is a string key/value store.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Memory is a Cache held in process memory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
