package contexts

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Trace captures provenance for one key lookup: which contexts held the key
// and with what value, ordered front to back. The first entry with Found set
// is the value Get would resolve.
type Trace struct {
	ID     string       `json:"id,omitempty"`
	Key    string       `json:"key"`
	Layers []Provenance `json:"layers"`
}

// Provenance details one context's contribution to a traced key.
type Provenance struct {
	Depth int  `json:"depth"`
	Local bool `json:"local,omitempty"`
	Found bool `json:"found"`
	Value any  `json:"value,omitempty"`
}

// Explain performs a non-destructive full scan for key and reports one
// Provenance per context, whether or not it held the key.
func (s *Stack[K, V]) Explain(key K) Trace {
	trace := Trace{
		ID:  uuid.NewString(),
		Key: fmt.Sprint(key),
	}
	for i := 0; i < s.Len(); i++ {
		entry := Provenance{
			Depth: i,
			Local: i == 0,
		}
		if value, ok := s.at(i).Get(key); ok {
			entry.Found = true
			entry.Value = value
		}
		trace.Layers = append(trace.Layers, entry)
	}
	return trace
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
