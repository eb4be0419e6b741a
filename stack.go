// Package contexts provides a layered key-value lookup structure: an ordered
// stack of independent maps ("contexts") queried as a single logical mapping.
// The front context — the most recently pushed — is the local context and
// takes precedence over deeper ones for shared keys, so values can be
// shadowed on scope entry and restored on scope exit without destroying the
// shadowed data. Typical uses are nested variable environments,
// configuration overlays, and template-rendering namespaces.
//
// All writes target the local context only. Reads scan front to back, or
// from an arbitrary depth. A stack can be forked from any depth into an
// independent deep copy, or collapsed into one flat map that honours
// precedence. Stacks carry value semantics with a single owner; callers
// needing cross-goroutine access must serialise it themselves.
package contexts

import (
	"iter"

	"github.com/goliatone/go-contexts/layering"
)

// Stack is an ordered sequence of contexts. Depth 0 is the front (local)
// context and has the highest precedence; the deepest context is the root.
// A Stack may be empty, in which case it reads as an empty mapping and
// swallows local-scoped writes.
type Stack[K comparable, V any] struct {
	// layers holds contexts in reverse precedence order: the front (local)
	// context is the last element, so push and pop stay O(1).
	layers  []Map[K, V]
	factory func() Map[K, V]
	clone   func(V) V
}

// StackOption configures a Stack at construction time.
type StackOption[K comparable, V any] func(*Stack[K, V])

// WithMapFactory sets the capability used to manufacture fresh contexts
// (PushEmpty, Extend on an empty stack, Collapse targets, clones). The
// default is the hash-based NewHashMap.
func WithMapFactory[K comparable, V any](factory func() Map[K, V]) StackOption[K, V] {
	return func(s *Stack[K, V]) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// WithValueClone sets the duplication strategy applied to values during
// PushLocal, PushWithLocal, Fork, ForkFrom and Clone. The default is
// layering.Clone, a reflect-based deep copy.
func WithValueClone[K comparable, V any](clone func(V) V) StackOption[K, V] {
	return func(s *Stack[K, V]) {
		if clone != nil {
			s.clone = clone
		}
	}
}

// New creates an empty stack with no contexts.
func New[K comparable, V any](opts ...StackOption[K, V]) *Stack[K, V] {
	s := &Stack[K, V]{
		factory: NewHashMap[K, V],
		clone:   layering.Clone[V],
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// WithEmpty creates a stack with a single empty context already pushed, ready
// to receive local writes.
func WithEmpty[K comparable, V any](opts ...StackOption[K, V]) *Stack[K, V] {
	s := New(opts...)
	s.layers = append(s.layers, s.factory())
	return s
}

// WithCapacity creates an empty stack with room reserved for capacity
// contexts.
func WithCapacity[K comparable, V any](capacity int, opts ...StackOption[K, V]) *Stack[K, V] {
	s := New(opts...)
	if capacity > 0 {
		s.layers = make([]Map[K, V], 0, capacity)
	}
	return s
}

// FromMap creates a stack whose sole context holds a copy of entries.
// Duplicate-key resolution for the source literal is the builtin map's: the
// last write wins.
func FromMap[K comparable, V any](entries map[K]V, opts ...StackOption[K, V]) *Stack[K, V] {
	s := New(opts...)
	ctx := s.factory()
	for key, value := range entries {
		ctx.Set(key, value)
	}
	s.layers = append(s.layers, ctx)
	return s
}

// FromContexts creates a stack from existing contexts ordered front to back:
// the first argument becomes the local context. The stack takes ownership of
// every context passed in.
func FromContexts[K comparable, V any](ctxs []Map[K, V], opts ...StackOption[K, V]) *Stack[K, V] {
	s := New(opts...)
	for i := len(ctxs) - 1; i >= 0; i-- {
		ctx := ctxs[i]
		if ctx == nil {
			ctx = s.factory()
		}
		s.layers = append(s.layers, ctx)
	}
	return s
}

// Collect creates a stack whose sole context is built from the pair sequence.
// Which value survives a repeated key is the injected map capability's
// resolution rule; for the default hash map the last occurrence wins.
func Collect[K comparable, V any](pairs iter.Seq2[K, V], opts ...StackOption[K, V]) *Stack[K, V] {
	s := New(opts...)
	ctx := s.factory()
	pairs(func(key K, value V) bool {
		ctx.Set(key, value)
		return true
	})
	s.layers = append(s.layers, ctx)
	return s
}

// CollectContexts creates a stack from a sequence of contexts ordered front
// to back, mirroring FromContexts.
func CollectContexts[K comparable, V any](ctxs iter.Seq[Map[K, V]], opts ...StackOption[K, V]) *Stack[K, V] {
	s := New(opts...)
	var collected []Map[K, V]
	ctxs(func(ctx Map[K, V]) bool {
		collected = append(collected, ctx)
		return true
	})
	for i := len(collected) - 1; i >= 0; i-- {
		ctx := collected[i]
		if ctx == nil {
			ctx = s.factory()
		}
		s.layers = append(s.layers, ctx)
	}
	return s
}

// Len returns the number of contexts in the stack.
func (s *Stack[K, V]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.layers)
}

// IsEmpty reports whether the stack holds no contexts.
func (s *Stack[K, V]) IsEmpty() bool {
	return s.Len() == 0
}

// Push adds ctx as the new local context. A nil ctx pushes a fresh empty
// context.
func (s *Stack[K, V]) Push(ctx Map[K, V]) {
	if ctx == nil {
		ctx = s.factory()
	}
	s.layers = append(s.layers, ctx)
}

// PushEmpty adds a fresh empty local context.
func (s *Stack[K, V]) PushEmpty() {
	s.layers = append(s.layers, s.factory())
}

// Pop removes and returns the local context, transferring ownership to the
// caller. It reports false when the stack is empty.
func (s *Stack[K, V]) Pop() (Map[K, V], bool) {
	if len(s.layers) == 0 {
		return nil, false
	}
	last := len(s.layers) - 1
	ctx := s.layers[last]
	s.layers[last] = nil
	s.layers = s.layers[:last]
	return ctx, true
}

// PushLocal duplicates the local context and pushes the copy as the new
// front, leaving two historically identical layers that diverge under later
// mutation. It is a no-op on an empty stack.
func (s *Stack[K, V]) PushLocal() {
	if len(s.layers) == 0 {
		return
	}
	s.layers = append(s.layers, s.cloneContext(s.layers[len(s.layers)-1]))
}

// PushWithLocal duplicates the local context, overlays ctx on the copy
// (entries in ctx win on collision) and pushes the merged result as the new
// front. The prior local context is untouched beneath it. On an empty stack
// ctx becomes the sole base layer.
func (s *Stack[K, V]) PushWithLocal(ctx Map[K, V]) {
	if ctx == nil {
		ctx = s.factory()
	}
	if len(s.layers) == 0 {
		s.layers = append(s.layers, ctx)
		return
	}
	merged := s.cloneContext(s.layers[len(s.layers)-1])
	ctx.Range(func(key K, value V) bool {
		merged.Set(key, value)
		return true
	})
	s.layers = append(s.layers, merged)
}

// at returns the context at depth, where depth 0 is the front.
func (s *Stack[K, V]) at(depth int) Map[K, V] {
	return s.layers[len(s.layers)-1-depth]
}

func (s *Stack[K, V]) cloneContext(ctx Map[K, V]) Map[K, V] {
	out := s.factory()
	ctx.Range(func(key K, value V) bool {
		out.Set(key, s.clone(value))
		return true
	})
	return out
}
