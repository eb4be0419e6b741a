package contexts

import "iter"

// Insert associates value with key in the local context, returning the value
// it displaced there. Values of the same key in deeper contexts are neither
// reported nor affected. On an empty stack the write is discarded and Insert
// reports false.
func (s *Stack[K, V]) Insert(key K, value V) (V, bool) {
	var zero V
	if s.Len() == 0 {
		return zero, false
	}
	return s.at(0).Set(key, value)
}

// Remove deletes key from the local context only, returning the removed
// value. If a deeper context also holds the key, that value becomes visible
// to subsequent Get calls once the local shadow is gone.
func (s *Stack[K, V]) Remove(key K) (V, bool) {
	var zero V
	if s.Len() == 0 {
		return zero, false
	}
	return s.at(0).Delete(key)
}

// RemoveAll deletes key from every context holding it, front to back, and
// returns the removed values in that order. Contexts themselves are never
// removed, only the key's entries.
func (s *Stack[K, V]) RemoveAll(key K) []V {
	var removed []V
	for i := 0; i < s.Len(); i++ {
		if value, ok := s.at(i).Delete(key); ok {
			removed = append(removed, value)
		}
	}
	return removed
}

// Extend merges the pair sequence into the local context; later pairs
// override earlier ones and any pre-existing local value for a colliding
// key. On an empty stack the pairs become a fresh sole base context.
func (s *Stack[K, V]) Extend(pairs iter.Seq2[K, V]) {
	if s.Len() == 0 {
		s.layers = append(s.layers, s.factory())
	}
	ctx := s.at(0)
	pairs(func(key K, value V) bool {
		ctx.Set(key, value)
		return true
	})
}

// ExtendMap merges entries into the local context with Extend semantics.
func (s *Stack[K, V]) ExtendMap(entries map[K]V) {
	if s.Len() == 0 {
		s.layers = append(s.layers, s.factory())
	}
	ctx := s.at(0)
	for key, value := range entries {
		ctx.Set(key, value)
	}
}
