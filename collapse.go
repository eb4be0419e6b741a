package contexts

import "cmp"

// Collapse drains the stack into a single flat map where every key carries
// the value from the shallowest context that held it. Contexts merge from
// the root toward the front, each step overwriting colliding keys, so the
// front-most write wins at any depth. The stack is empty afterwards.
func (s *Stack[K, V]) Collapse() Map[K, V] {
	if len(s.layers) == 1 {
		ctx, _ := s.Pop()
		return ctx
	}
	out := s.factory()
	s.CollapseInto(out)
	return out
}

// CollapseInto drains the stack into dst with the same precedence semantics
// as Collapse. Pre-existing entries in dst survive unless a stack key
// collides with them.
func (s *Stack[K, V]) CollapseInto(dst Map[K, V]) {
	if dst == nil {
		return
	}
	// layers already run root-first internally.
	for _, ctx := range s.layers {
		ctx.Range(func(key K, value V) bool {
			dst.Set(key, value)
			return true
		})
	}
	clear(s.layers)
	s.layers = s.layers[:0]
}

// CollapseOrdered drains the stack into a TreeMap ordered by cmp.Compare,
// for callers needing deterministic iteration over the flattened result.
func CollapseOrdered[K cmp.Ordered, V any](s *Stack[K, V]) *TreeMap[K, V] {
	out := NewTreeMap[K, V]()
	s.CollapseInto(out)
	return out
}

// CollapseIntoOrdered drains the stack into an existing TreeMap, keeping
// Collapse precedence over dst's prior entries.
func CollapseIntoOrdered[K comparable, V any](s *Stack[K, V], dst *TreeMap[K, V]) {
	if dst == nil {
		return
	}
	s.CollapseInto(dst)
}
