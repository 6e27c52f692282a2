package collection

// Map is a string-keyed container.
type Map[V any] interface {
	Put(key string, v V)
	Get(key string) (V, bool)
	Delete(key string)
	Len() int
	// Range calls fn for every entry until fn returns false.
	Range(fn func(key string, v V) bool)
}

// SortedMap is a Map iterated in ascending key order.
type SortedMap[V any] interface {
	Map[V]
	Keys() []string
	First() (string, V, bool)
	Last() (string, V, bool)
}

// ConcurrentMap is a Map safe for concurrent use.
type ConcurrentMap[V any] interface {
	Map[V]
	LoadOrStore(key string, v V) (actual V, loaded bool)
}

// Initializer is implemented by containers that need more than a zero value
// before their first use.
type Initializer interface {
	Init() error
}

// Entries copies m into a builtin map.
func Entries[V any](m Map[V]) map[string]V {
	if m == nil {
		return nil
	}

	out := make(map[string]V, m.Len())
	m.Range(func(key string, v V) bool {
		out[key] = v
		return true
	})

	return out
}

// HashMap is the general purpose Map. The zero value is ready to use.
type HashMap[V any] struct {
	entries map[string]V
}

func NewHashMap[V any]() *HashMap[V] {
	return &HashMap[V]{entries: make(map[string]V)}
}

func (m *HashMap[V]) Put(key string, v V) {
	if m.entries == nil {
		m.entries = make(map[string]V)
	}

	m.entries[key] = v
}

func (m *HashMap[V]) Get(key string) (V, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *HashMap[V]) Delete(key string) {
	delete(m.entries, key)
}

func (m *HashMap[V]) Len() int {
	return len(m.entries)
}

func (m *HashMap[V]) Range(fn func(key string, v V) bool) {
	for key, v := range m.entries {
		if !fn(key, v) {
			return
		}
	}
}
