package contexts

import "fmt"

// Get returns the value for key from the shallowest context containing it,
// scanning front to back. It reports false when no context holds the key.
func (s *Stack[K, V]) Get(key K) (V, bool) {
	return s.GetFrom(0, key)
}

// GetLocal returns the value for key from the local context only. It reports
// false when the stack is empty or the front context lacks the key, even if
// a deeper context holds it.
func (s *Stack[K, V]) GetLocal(key K) (V, bool) {
	var zero V
	if s.Len() == 0 {
		return zero, false
	}
	return s.at(0).Get(key)
}

// GetFrom returns the value for key from the shallowest context at depth or
// deeper. An out-of-range depth is a valid query that matches nothing.
func (s *Stack[K, V]) GetFrom(depth int, key K) (V, bool) {
	var zero V
	if depth < 0 {
		return zero, false
	}
	for i := depth; i < s.Len(); i++ {
		if value, ok := s.at(i).Get(key); ok {
			return value, true
		}
	}
	return zero, false
}

// GetAll collects one value per context holding key, ordered front to back
// (highest precedence first). The result is empty when the key is absent
// everywhere.
func (s *Stack[K, V]) GetAll(key K) []V {
	var values []V
	for i := 0; i < s.Len(); i++ {
		if value, ok := s.at(i).Get(key); ok {
			values = append(values, value)
		}
	}
	return values
}

// ContainsKey reports whether any context holds key.
func (s *Stack[K, V]) ContainsKey(key K) bool {
	for i := 0; i < s.Len(); i++ {
		if _, ok := s.at(i).Get(key); ok {
			return true
		}
	}
	return false
}

// ContainsLocalKey reports whether the local context holds key.
func (s *Stack[K, V]) ContainsLocalKey(key K) bool {
	if s.Len() == 0 {
		return false
	}
	_, ok := s.at(0).Get(key)
	return ok
}

// Update applies fn to the value for key in the shallowest context
// containing it, storing the result in place. It reports whether a match was
// found. This is the in-place counterpart of Get; fn runs exactly once.
func (s *Stack[K, V]) Update(key K, fn func(V) V) bool {
	return s.UpdateFrom(0, key, fn)
}

// UpdateLocal applies fn to the value for key in the local context only.
func (s *Stack[K, V]) UpdateLocal(key K, fn func(V) V) bool {
	if s.Len() == 0 || fn == nil {
		return false
	}
	ctx := s.at(0)
	value, ok := ctx.Get(key)
	if !ok {
		return false
	}
	ctx.Set(key, fn(value))
	return true
}

// UpdateFrom applies fn to the value for key in the shallowest context at
// depth or deeper. Out-of-range depths match nothing.
func (s *Stack[K, V]) UpdateFrom(depth int, key K, fn func(V) V) bool {
	if depth < 0 || fn == nil {
		return false
	}
	for i := depth; i < s.Len(); i++ {
		ctx := s.at(i)
		if value, ok := ctx.Get(key); ok {
			ctx.Set(key, fn(value))
			return true
		}
	}
	return false
}

// MustGet returns the value for key scanning front to back and panics when
// the stack is empty or no context holds the key. It is reserved for call
// sites that have already established existence; everywhere else use Get and
// branch on the boolean.
func (s *Stack[K, V]) MustGet(key K) V {
	value, ok := s.Get(key)
	if !ok {
		panic(fmt.Sprintf("contexts: key %v not found", key))
	}
	return value
}
