package contexts

import (
	"cmp"

	"github.com/google/btree"
)

// TreeMap is the ordered key-value capability consumed by the ordered
// collapse variants. It is backed by github.com/google/btree and keeps keys
// under the comparison supplied at construction, so Range and Keys iterate
// deterministically. TreeMap satisfies Map, which also makes it usable as a
// per-layer context via WithMapFactory.
type TreeMap[K comparable, V any] struct {
	tree *btree.BTreeG[treeEntry[K, V]]
}

type treeEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewTreeMap returns an empty TreeMap ordered by cmp.Compare.
func NewTreeMap[K cmp.Ordered, V any]() *TreeMap[K, V] {
	return NewTreeMapFunc[K, V](cmp.Compare[K])
}

// NewTreeMapFunc returns an empty TreeMap ordered by compare, which must
// define a total order over K.
func NewTreeMapFunc[K comparable, V any](compare func(K, K) int) *TreeMap[K, V] {
	less := func(a, b treeEntry[K, V]) bool {
		return compare(a.key, b.key) < 0
	}
	return &TreeMap[K, V]{
		tree: btree.NewG(32, less),
	}
}

func (m *TreeMap[K, V]) Get(key K) (V, bool) {
	entry, ok := m.tree.Get(treeEntry[K, V]{key: key})
	return entry.value, ok
}

func (m *TreeMap[K, V]) Set(key K, value V) (V, bool) {
	prior, ok := m.tree.ReplaceOrInsert(treeEntry[K, V]{key: key, value: value})
	return prior.value, ok
}

func (m *TreeMap[K, V]) Delete(key K) (V, bool) {
	prior, ok := m.tree.Delete(treeEntry[K, V]{key: key})
	return prior.value, ok
}

func (m *TreeMap[K, V]) Len() int {
	return m.tree.Len()
}

// Range visits entries in ascending key order.
func (m *TreeMap[K, V]) Range(fn func(key K, value V) bool) {
	m.tree.Ascend(func(entry treeEntry[K, V]) bool {
		return fn(entry.key, entry.value)
	})
}

// Keys returns every key in ascending order.
func (m *TreeMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.tree.Len())
	m.tree.Ascend(func(entry treeEntry[K, V]) bool {
		keys = append(keys, entry.key)
		return true
	})
	return keys
}
