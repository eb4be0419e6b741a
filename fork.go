package contexts

// Fork returns an independent stack holding a deep copy of the local context
// only. Equivalent to ForkFrom(0). It reports false on an empty stack.
func (s *Stack[K, V]) Fork() (*Stack[K, V], bool) {
	return s.ForkFrom(0)
}

// ForkFrom returns an independent stack holding deep copies of every context
// from the front through depth inclusive, preserving relative precedence.
// ForkFrom(Len()-1) duplicates the whole stack. It reports false when depth
// is out of bounds.
func (s *Stack[K, V]) ForkFrom(depth int) (*Stack[K, V], bool) {
	if depth < 0 || depth >= s.Len() {
		return nil, false
	}
	forked := s.emptyLike(depth + 1)
	for i := depth; i >= 0; i-- {
		forked.layers = append(forked.layers, s.cloneContext(s.at(i)))
	}
	return forked, true
}

// Clone returns an independent deep copy of the whole stack, preserving
// context order exactly.
func (s *Stack[K, V]) Clone() *Stack[K, V] {
	cloned := s.emptyLike(len(s.layers))
	for _, ctx := range s.layers {
		cloned.layers = append(cloned.layers, s.cloneContext(ctx))
	}
	return cloned
}

// emptyLike returns a contextless stack sharing s's capability configuration.
func (s *Stack[K, V]) emptyLike(capacity int) *Stack[K, V] {
	out := &Stack[K, V]{
		factory: s.factory,
		clone:   s.clone,
	}
	if capacity > 0 {
		out.layers = make([]Map[K, V], 0, capacity)
	}
	return out
}
