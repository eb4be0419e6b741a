package contexts

import (
	"maps"
	"testing"
)

func TestWithEmptyAcceptsLocalWrites(t *testing.T) {
	stack := WithEmpty[string, int]()

	if prior, ok := stack.Insert("x", 1); ok {
		t.Fatalf("expected no prior value, got %d", prior)
	}
	if got := stack.MustGet("x"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if stack.Len() != 1 {
		t.Fatalf("expected one context, got %d", stack.Len())
	}
}

func TestNewIsNoOpSinkWhileEmpty(t *testing.T) {
	stack := New[string, int]()

	if _, ok := stack.Insert("x", 1); ok {
		t.Fatalf("insert into empty stack must report no prior value")
	}
	if stack.ContainsKey("x") {
		t.Fatalf("empty stack must discard inserted values")
	}
	if _, ok := stack.Remove("x"); ok {
		t.Fatalf("remove on empty stack must match nothing")
	}
	if !stack.IsEmpty() || stack.Len() != 0 {
		t.Fatalf("expected empty stack, got len %d", stack.Len())
	}
}

func TestWithCapacityStartsWithoutContexts(t *testing.T) {
	stack := WithCapacity[string, int](3)

	if _, ok := stack.Insert("x", 1); ok {
		t.Fatalf("capacity-only stack must not have a local context")
	}
	if stack.Len() != 0 {
		t.Fatalf("expected zero contexts, got %d", stack.Len())
	}
}

func TestFromMapSeedsSingleContext(t *testing.T) {
	stack := FromMap(map[string]int{"w": 1, "x": 2})

	if got := stack.MustGet("w"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if stack.Len() != 1 {
		t.Fatalf("expected one context, got %d", stack.Len())
	}
}

func TestFromContextsKeepsFrontToBackOrder(t *testing.T) {
	front := HashMapOf(map[string]int{"w": 1})
	back := HashMapOf(map[string]int{"w": 2, "x": 3})
	stack := FromContexts([]Map[string, int]{front, back})

	if got := stack.MustGet("w"); got != 1 {
		t.Fatalf("expected front context to win, got %d", got)
	}
	if got, ok := stack.GetFrom(1, "w"); !ok || got != 2 {
		t.Fatalf("expected back context at depth 1, got %d (%v)", got, ok)
	}
}

func TestCollectBuildsSoleContextFromPairs(t *testing.T) {
	stack := Collect(maps.All(map[string]int{"a": 1, "b": 2}))

	if stack.Len() != 1 {
		t.Fatalf("expected one context, got %d", stack.Len())
	}
	if got := stack.MustGet("b"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestPushPopRestoresPriorState(t *testing.T) {
	stack := FromMap(map[string]int{"w": 1})
	before := stack.Clone()

	stack.Push(HashMapOf(map[string]int{"w": 9, "z": 3}))
	if got := stack.MustGet("w"); got != 9 {
		t.Fatalf("pushed context must take precedence, got %d", got)
	}

	popped, ok := stack.Pop()
	if !ok {
		t.Fatalf("expected pop to return the pushed context")
	}
	if value, ok := popped.Get("z"); !ok || value != 3 {
		t.Fatalf("popped context should hold z=3, got %d (%v)", value, ok)
	}
	if !Equal(stack, before) {
		t.Fatalf("pop must restore the pre-push stack")
	}

	stack.Pop()
	if _, ok := stack.Pop(); ok {
		t.Fatalf("pop on empty stack must report false")
	}
}

func TestPushLocalDivergesUnderMutation(t *testing.T) {
	stack := FromMap(map[string]int{"w": 1})
	stack.PushLocal()

	if stack.Len() != 2 {
		t.Fatalf("expected two contexts, got %d", stack.Len())
	}
	stack.Insert("w", 2)
	if got := stack.MustGet("w"); got != 2 {
		t.Fatalf("expected local override, got %d", got)
	}

	stack.Pop()
	if got := stack.MustGet("w"); got != 1 {
		t.Fatalf("original layer must be untouched, got %d", got)
	}
}

func TestPushLocalOnEmptyStackIsNoOp(t *testing.T) {
	stack := New[string, int]()
	stack.PushLocal()
	if stack.Len() != 0 {
		t.Fatalf("push local on empty stack must not add contexts")
	}
}

func TestPushWithLocalMergesOverCloneOfFront(t *testing.T) {
	stack := FromMap(map[string]int{"w": 1, "x": 5})
	stack.PushWithLocal(HashMapOf(map[string]int{"x": 2}))

	if got, ok := stack.GetLocal("w"); !ok || got != 1 {
		t.Fatalf("merged front should carry prior local entries, got %d (%v)", got, ok)
	}
	if got := stack.MustGet("x"); got != 2 {
		t.Fatalf("pushed entries must win collisions, got %d", got)
	}

	stack.Pop()
	if got := stack.MustGet("x"); got != 5 {
		t.Fatalf("prior front must be untouched beneath the merge, got %d", got)
	}
}

func TestPushWithLocalOnEmptyStackBecomesBase(t *testing.T) {
	stack := New[string, int]()
	stack.PushWithLocal(HashMapOf(map[string]int{"x": 2}))

	if stack.Len() != 1 {
		t.Fatalf("expected sole base layer, got %d contexts", stack.Len())
	}
	if got := stack.MustGet("x"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestExtendTargetsLocalContextOnly(t *testing.T) {
	stack := FromMap(map[string]int{"w": 1})
	stack.PushEmpty()
	stack.ExtendMap(map[string]int{"w": 7, "y": 4})

	if got, ok := stack.GetLocal("w"); !ok || got != 7 {
		t.Fatalf("extend must write into the front, got %d (%v)", got, ok)
	}
	if got, ok := stack.GetFrom(1, "w"); !ok || got != 1 {
		t.Fatalf("deeper context must be untouched, got %d (%v)", got, ok)
	}
}

func TestExtendOnEmptyStackCreatesBaseContext(t *testing.T) {
	stack := New[string, int]()
	stack.Extend(maps.All(map[string]int{"a": 1}))

	if stack.Len() != 1 {
		t.Fatalf("expected extend to push a base context, got %d", stack.Len())
	}
	if got := stack.MustGet("a"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestRemoveAllReturnsValuesFrontToBack(t *testing.T) {
	stack := FromContexts([]Map[string, int]{
		HashMapOf(map[string]int{"w": 3}),
		HashMapOf(map[string]int{"x": 9}),
		HashMapOf(map[string]int{"w": 2}),
		HashMapOf(map[string]int{"w": 1}),
	})

	removed := stack.RemoveAll("w")
	if len(removed) != 3 || removed[0] != 3 || removed[1] != 2 || removed[2] != 1 {
		t.Fatalf("expected [3 2 1] in precedence order, got %v", removed)
	}
	if stack.ContainsKey("w") {
		t.Fatalf("w must be gone from every context")
	}
	if stack.Len() != 4 {
		t.Fatalf("contexts themselves must survive, got %d", stack.Len())
	}
	if got, ok := stack.GetFrom(1, "x"); !ok || got != 9 {
		t.Fatalf("unrelated keys must be untouched, got %d,%v", got, ok)
	}
}

func TestEqualIsPositional(t *testing.T) {
	a := FromContexts([]Map[string, int]{
		HashMapOf(map[string]int{"w": 1}),
		HashMapOf(map[string]int{"x": 2}),
	})
	b := FromContexts([]Map[string, int]{
		HashMapOf(map[string]int{"w": 1}),
		HashMapOf(map[string]int{"x": 2}),
	})
	reordered := FromContexts([]Map[string, int]{
		HashMapOf(map[string]int{"x": 2}),
		HashMapOf(map[string]int{"w": 1}),
	})

	if !Equal(a, b) {
		t.Fatalf("identical stacks must compare equal")
	}
	if Equal(a, reordered) {
		t.Fatalf("reordered layers with identical aggregate content must not be equal")
	}
	if !EqualFunc(a, b, func(x, y int) bool { return x == y }) {
		t.Fatalf("EqualFunc must agree with Equal")
	}
}

// Walks the documented nested-scope scenario end to end.
func TestNestedScopeScenario(t *testing.T) {
	manager := WithEmpty[string, int]()
	manager.Insert("red", 255) // [{red:255}]

	if !manager.ContainsKey("red") {
		t.Fatalf("red must be in context")
	}
	if _, ok := manager.Get("green"); ok {
		t.Fatalf("green must not be in context")
	}

	manager.Push(HashMapOf(map[string]int{"red": 63})) // [{red:63} {red:255}]
	manager.PushEmpty()                                // [{} {red:63} {red:255}]

	if got := manager.MustGet("red"); got != 63 {
		t.Fatalf("expected fall-through to 63, got %d", got)
	}
	if got, ok := manager.GetFrom(1, "red"); !ok || got != 63 {
		t.Fatalf("expected non-local red 63, got %d (%v)", got, ok)
	}
	if _, ok := manager.GetLocal("red"); ok {
		t.Fatalf("front is empty, local red must be nothing")
	}

	manager.Pop() // [{red:63} {red:255}]
	if got := manager.MustGet("red"); got != 63 {
		t.Fatalf("expected 63 after pop, got %d", got)
	}
	if got, ok := manager.GetFrom(1, "red"); !ok || got != 255 {
		t.Fatalf("expected non-local red 255 after pop, got %d (%v)", got, ok)
	}

	manager.PushLocal() // [{red:63} {red:63} {red:255}]
	if !manager.Update("red", func(int) int { return 192 }) {
		t.Fatalf("update must find red")
	}
	if got := manager.MustGet("red"); got != 192 {
		t.Fatalf("expected 192 after update, got %d", got)
	}

	if removed, ok := manager.Remove("red"); !ok || removed != 192 {
		t.Fatalf("remove must return 192, got %d (%v)", removed, ok)
	}
	if got := manager.MustGet("red"); got != 63 {
		t.Fatalf("expected shadowed 63 to reappear, got %d", got)
	}
	if _, ok := manager.GetLocal("red"); ok {
		t.Fatalf("local red must be gone after remove")
	}

	fork, ok := manager.Fork()
	if !ok {
		t.Fatalf("fork must succeed on non-empty stack")
	}
	fork2, ok := manager.ForkFrom(1)
	if !ok {
		t.Fatalf("fork from depth 1 must succeed")
	}
	if manager.Len() != 3 || fork.Len() != 1 || fork2.Len() != 2 {
		t.Fatalf("unexpected lengths: manager=%d fork=%d fork2=%d", manager.Len(), fork.Len(), fork2.Len())
	}

	removed := manager.RemoveAll("red")
	if len(removed) != 2 {
		t.Fatalf("expected red removed from two contexts, got %v", removed)
	}
	if _, ok := manager.Get("red"); ok {
		t.Fatalf("red must be gone everywhere after remove all")
	}
}
