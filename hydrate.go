package contexts

import "github.com/goliatone/go-contexts/internal/hydrate"

// Hydrate resolves stack with deep-merge semantics and decodes the flattened
// environment into T via a JSON round trip. T is typically a configuration
// struct with json tags matching the stack's keys.
func Hydrate[T, V any](stack *Stack[string, V]) (T, error) {
	view := ResolveDeep(stack)
	decoder := hydrate.NewDecoder[T]()
	return decoder.Decode(hydrate.Origin{SnapshotID: view.ID()}, view.Env())
}
