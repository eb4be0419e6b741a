package contexts

// Map is the per-layer key-value capability a Stack composes. A Stack never
// implements its own storage; every context is some Map supplied or
// manufactured at construction time. Implementations do not need to be safe
// for concurrent use — the Stack itself is single-owner.
type Map[K comparable, V any] interface {
	// Get returns the value stored for key.
	Get(key K) (V, bool)
	// Set stores value under key, returning the value it displaced.
	Set(key K, value V) (V, bool)
	// Delete removes key, returning the value that was stored.
	Delete(key K) (V, bool)
	// Len reports the number of entries.
	Len() int
	// Range visits every entry until fn returns false. Iteration order is
	// implementation-defined.
	Range(fn func(key K, value V) bool)
}

// hashMap adapts Go's builtin map to the Map capability. This is the default
// context implementation for every Stack.
type hashMap[K comparable, V any] struct {
	entries map[K]V
}

// NewHashMap returns an empty hash-based Map.
func NewHashMap[K comparable, V any]() Map[K, V] {
	return &hashMap[K, V]{entries: make(map[K]V)}
}

// HashMapOf returns a hash-based Map seeded with a copy of entries. The
// caller keeps ownership of the source map.
func HashMapOf[K comparable, V any](entries map[K]V) Map[K, V] {
	out := make(map[K]V, len(entries))
	for key, value := range entries {
		out[key] = value
	}
	return &hashMap[K, V]{entries: out}
}

func (m *hashMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.entries[key]
	return value, ok
}

func (m *hashMap[K, V]) Set(key K, value V) (V, bool) {
	prior, ok := m.entries[key]
	m.entries[key] = value
	return prior, ok
}

func (m *hashMap[K, V]) Delete(key K) (V, bool) {
	prior, ok := m.entries[key]
	if ok {
		delete(m.entries, key)
	}
	return prior, ok
}

func (m *hashMap[K, V]) Len() int {
	return len(m.entries)
}

func (m *hashMap[K, V]) Range(fn func(key K, value V) bool) {
	for key, value := range m.entries {
		if !fn(key, value) {
			return
		}
	}
}
