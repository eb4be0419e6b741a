package contexts

import (
	"fmt"
	"testing"
)

func benchmarkStack(depth int) *Stack[string, int] {
	stack := WithCapacity[string, int](depth)
	for i := 0; i < depth; i++ {
		stack.Push(HashMapOf(map[string]int{
			fmt.Sprintf("key_%d", i): i,
			"shared":                 i,
		}))
	}
	return stack
}

func BenchmarkGetDeepKey(b *testing.B) {
	stack := benchmarkStack(10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := stack.Get("key_0"); !ok {
			b.Fatalf("key lost")
		}
	}
}

func BenchmarkGetLocalKey(b *testing.B) {
	stack := benchmarkStack(10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := stack.Get("shared"); !ok {
			b.Fatalf("key lost")
		}
	}
}

func BenchmarkCollapse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		stack := benchmarkStack(10)
		b.StartTimer()
		if flat := stack.Collapse(); flat.Len() == 0 {
			b.Fatalf("collapse produced nothing")
		}
	}
}

func BenchmarkResolveAndEvaluate(b *testing.B) {
	stack := WithCapacity[string, any](3)
	stack.Push(HashMapOf(map[string]any{"base": 10}))
	stack.Push(HashMapOf(map[string]any{"delta": 5}))
	stack.Push(HashMapOf(map[string]any{"factor": 2}))

	cache := &mapProgramCache{}
	view := Resolve(stack, WithProgramCache(cache))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := view.Evaluate("(base + delta) * factor"); err != nil {
			b.Fatalf("evaluate: %v", err)
		}
	}
}
