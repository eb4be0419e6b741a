package contexts

// Equal reports whether two stacks hold the same number of contexts and each
// positionally corresponding pair of contexts carries identical entries.
// Reordering layers with identical aggregate content is not equal.
func Equal[K, V comparable](a, b *Stack[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is Equal with a caller-supplied value comparison.
func EqualFunc[K comparable, V any](a, b *Stack[K, V], eq func(V, V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	if eq == nil {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !mapEqual(a.at(i), b.at(i), eq) {
			return false
		}
	}
	return true
}

func mapEqual[K comparable, V any](a, b Map[K, V], eq func(V, V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Range(func(key K, value V) bool {
		other, ok := b.Get(key)
		if !ok || !eq(value, other) {
			equal = false
			return false
		}
		return true
	})
	return equal
}
