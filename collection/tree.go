package collection

import "github.com/google/btree"

const treeDegree = 16

type treeEntry[V any] struct {
	key   string
	value V
}

func lessEntry[V any](a, b treeEntry[V]) bool {
	return a.key < b.key
}

// TreeMap keeps its entries in a B-tree ordered by key. The zero value is
// ready to use.
type TreeMap[V any] struct {
	tree *btree.BTreeG[treeEntry[V]]
}

func NewTreeMap[V any]() *TreeMap[V] {
	return &TreeMap[V]{tree: btree.NewG(treeDegree, lessEntry[V])}
}

func (m *TreeMap[V]) entries() *btree.BTreeG[treeEntry[V]] {
	if m.tree == nil {
		m.tree = btree.NewG(treeDegree, lessEntry[V])
	}

	return m.tree
}

func (m *TreeMap[V]) Put(key string, v V) {
	m.entries().ReplaceOrInsert(treeEntry[V]{key: key, value: v})
}

func (m *TreeMap[V]) Get(key string) (V, bool) {
	if m.tree == nil {
		var zero V
		return zero, false
	}

	e, ok := m.tree.Get(treeEntry[V]{key: key})
	return e.value, ok
}

func (m *TreeMap[V]) Delete(key string) {
	if m.tree == nil {
		return
	}

	m.tree.Delete(treeEntry[V]{key: key})
}

func (m *TreeMap[V]) Len() int {
	if m.tree == nil {
		return 0
	}

	return m.tree.Len()
}

// Range visits entries in ascending key order.
func (m *TreeMap[V]) Range(fn func(key string, v V) bool) {
	if m.tree == nil {
		return
	}

	m.tree.Ascend(func(e treeEntry[V]) bool {
		return fn(e.key, e.value)
	})
}

func (m *TreeMap[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})

	return keys
}

func (m *TreeMap[V]) First() (string, V, bool) {
	if m.tree == nil {
		var zero V
		return "", zero, false
	}

	e, ok := m.tree.Min()
	return e.key, e.value, ok
}

func (m *TreeMap[V]) Last() (string, V, bool) {
	if m.tree == nil {
		var zero V
		return "", zero, false
	}

	e, ok := m.tree.Max()
	return e.key, e.value, ok
}
