// internal/store/memory.go
//
// In-memory implementation of the KV interface.
// This is a lightweight persistence layer used for ephemeral sessions,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores raw value bytes keyed by (scope, key) in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// KV defines the key-value persistence interface for session state.
// Keys are composite strings encoding mode/list/length or fixed names for
// session-level settings and stats; scope isolates one player's state.
// Implementations may be backed by memory (this package) or SQLite.
type KV interface {
	// Get retrieves a value. The second return reports presence.
	Get(ctx context.Context, scope, key string) ([]byte, bool, error)

	// Set persists or updates a value.
	Set(ctx context.Context, scope, key string, value []byte) error

	// Remove deletes a value; removing a missing key is not an error.
	Remove(ctx context.Context, scope, key string) error

	// Claim moves every value from one scope to another, used when an
	// anonymous player signs up or logs in. Keys already present in the
	// destination scope win.
	Claim(ctx context.Context, from, to string) error
}

type memKey struct{ scope, key string }

// memory is an in-memory map-based KV implementation.
type memory struct {
	mu     sync.RWMutex      // guards values map
	values map[memKey][]byte // keyed by (scope, key)
}

// NewMemory constructs a new in-memory KV.
func NewMemory() KV {
	return &memory{values: make(map[memKey][]byte)}
}

// Get looks up a value by (scope, key).
func (m *memory) Get(ctx context.Context, scope, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[memKey{scope, key}]
	return v, ok, nil
}

// Set adds or updates the value in the map.
func (m *memory) Set(ctx context.Context, scope, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[memKey{scope, key}] = cp
	return nil
}

// Remove deletes the value if present.
func (m *memory) Remove(ctx context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, memKey{scope, key})
	return nil
}

// Claim re-keys every value under from to to, keeping existing destination
// values.
func (m *memory) Claim(ctx context.Context, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.values {
		if k.scope != from {
			continue
		}
		dst := memKey{to, k.key}
		if _, exists := m.values[dst]; !exists {
			m.values[dst] = v
		}
		delete(m.values, k)
	}
	return nil
}
