package contexts

import "testing"

func layeredStack() *Stack[string, int] {
	// front: {w:3}, middle: {x:2}, root: {w:1, y:5}
	return FromContexts([]Map[string, int]{
		HashMapOf(map[string]int{"w": 3}),
		HashMapOf(map[string]int{"x": 2}),
		HashMapOf(map[string]int{"w": 1, "y": 5}),
	})
}

func TestGetMatchesGetFromZero(t *testing.T) {
	stack := layeredStack()
	for _, key := range []string{"w", "x", "y", "missing"} {
		got, ok := stack.Get(key)
		fromZero, fromOK := stack.GetFrom(0, key)
		if got != fromZero || ok != fromOK {
			t.Fatalf("get(%q)=%d,%v but get_from(0,%q)=%d,%v", key, got, ok, key, fromZero, fromOK)
		}
	}
}

func TestGetFromSkipsShallowerContexts(t *testing.T) {
	stack := layeredStack()

	cases := []struct {
		depth int
		key   string
		want  int
		found bool
	}{
		{0, "w", 3, true},
		{1, "w", 1, true},
		{2, "w", 1, true},
		{3, "w", 0, false},
		{-1, "w", 0, false},
		{0, "x", 2, true},
		{1, "y", 5, true},
	}
	for _, tc := range cases {
		got, ok := stack.GetFrom(tc.depth, tc.key)
		if got != tc.want || ok != tc.found {
			t.Fatalf("get_from(%d, %q) = %d,%v want %d,%v", tc.depth, tc.key, got, ok, tc.want, tc.found)
		}
	}
}

func TestGetLocalIgnoresDeeperContexts(t *testing.T) {
	stack := layeredStack()

	if got, ok := stack.GetLocal("w"); !ok || got != 3 {
		t.Fatalf("expected local w=3, got %d (%v)", got, ok)
	}
	if _, ok := stack.GetLocal("x"); ok {
		t.Fatalf("x lives below the front, local lookup must miss")
	}
	if stack.ContainsLocalKey("x") {
		t.Fatalf("contains_local must agree with get_local")
	}
	if !stack.ContainsKey("x") {
		t.Fatalf("contains must see deeper contexts")
	}

	empty := New[string, int]()
	if _, ok := empty.GetLocal("w"); ok {
		t.Fatalf("empty stack has no local context")
	}
}

func TestGetAllCollectsShadowedValuesInPrecedenceOrder(t *testing.T) {
	stack := FromContexts([]Map[string, int]{
		HashMapOf(map[string]int{"w": 3}),
		HashMapOf(map[string]int{"w": 2}),
		HashMapOf(map[string]int{"w": 1}),
	})

	values := stack.GetAll("w")
	if len(values) != 3 || values[0] != 3 || values[1] != 2 || values[2] != 1 {
		t.Fatalf("expected [3 2 1], got %v", values)
	}
	if got := stack.GetAll("missing"); len(got) != 0 {
		t.Fatalf("expected empty result for absent key, got %v", got)
	}
}

func TestUpdateWritesFirstMatchInPlace(t *testing.T) {
	stack := FromContexts([]Map[string, int]{
		HashMapOf(map[string]int{"w": 2}),
		HashMapOf(map[string]int{"w": 1}),
	})

	if !stack.UpdateFrom(1, "w", func(v int) int { return v + 10 }) {
		t.Fatalf("expected update at depth 1 to match")
	}
	if got, _ := stack.GetFrom(0, "w"); got != 2 {
		t.Fatalf("front value must be untouched, got %d", got)
	}
	if got, _ := stack.GetFrom(1, "w"); got != 11 {
		t.Fatalf("deep value must be updated, got %d", got)
	}
	if stack.UpdateFrom(2, "w", func(v int) int { return v }) {
		t.Fatalf("out-of-range update must match nothing")
	}
	if stack.UpdateLocal("missing", func(v int) int { return v }) {
		t.Fatalf("update local must miss absent keys")
	}
}

func TestMustGetPanicsOnMiss(t *testing.T) {
	stack := New[string, int]()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for absent key")
		}
	}()
	stack.MustGet("missing")
}

func TestExplainReportsPerLayerProvenance(t *testing.T) {
	stack := layeredStack()

	trace := stack.Explain("w")
	if trace.ID == "" {
		t.Fatalf("trace must carry a snapshot id")
	}
	if trace.Key != "w" {
		t.Fatalf("expected key w, got %q", trace.Key)
	}
	if len(trace.Layers) != 3 {
		t.Fatalf("expected one entry per context, got %d", len(trace.Layers))
	}
	if !trace.Layers[0].Found || !trace.Layers[0].Local || trace.Layers[0].Value != 3 {
		t.Fatalf("front provenance mismatch: %+v", trace.Layers[0])
	}
	if trace.Layers[1].Found {
		t.Fatalf("middle context does not hold w: %+v", trace.Layers[1])
	}
	if !trace.Layers[2].Found || trace.Layers[2].Value != 1 {
		t.Fatalf("root provenance mismatch: %+v", trace.Layers[2])
	}
}

func TestTraceJSONRoundTrip(t *testing.T) {
	trace := layeredStack().Explain("w")

	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := TraceFromJSON(payload)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Key != trace.Key || len(decoded.Layers) != len(trace.Layers) {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, trace)
	}
}
