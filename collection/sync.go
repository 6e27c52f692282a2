package collection

import "sync"

// SyncMap is a Map guarded by a read-write mutex. The zero value is ready to
// use.
type SyncMap[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

func NewSyncMap[V any]() *SyncMap[V] {
	return &SyncMap[V]{entries: make(map[string]V)}
}

func (m *SyncMap[V]) Put(key string, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entries == nil {
		m.entries = make(map[string]V)
	}

	m.entries[key] = v
}

func (m *SyncMap[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	return v, ok
}

func (m *SyncMap[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

func (m *SyncMap[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Range iterates over a snapshot, so fn may modify the map.
func (m *SyncMap[V]) Range(fn func(key string, v V) bool) {
	m.mu.RLock()
	snapshot := make(map[string]V, len(m.entries))
	for key, v := range m.entries {
		snapshot[key] = v
	}
	m.mu.RUnlock()

	for key, v := range snapshot {
		if !fn(key, v) {
			return
		}
	}
}

func (m *SyncMap[V]) LoadOrStore(key string, v V) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if actual, ok := m.entries[key]; ok {
		return actual, true
	}

	if m.entries == nil {
		m.entries = make(map[string]V)
	}

	m.entries[key] = v
	return v, false
}
