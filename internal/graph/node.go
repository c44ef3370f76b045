package graph

// Position is a node's location on the canvas, in canvas coordinates.
type Position struct {
	X float64
	Y float64
}

// Node is a single vertex on the canvas. The Payload map is opaque to the
// graph layer; its shape is declared per kind by the construction registry.
type Node struct {
	// ID is the unique identifier of the node instance.
	ID string
	// Kind names the node's registered construction specification.
	Kind string
	// Position is the node's canvas location.
	Position Position
	// Payload holds the node's kind-specific data.
	Payload map[string]any
	// Active reports the node's authoritative activation state.
	Active bool
	// Deletable is false for nodes the user must not remove (e.g. anchors).
	Deletable bool
	// ShowDetail toggles the expanded inspector rendering of the node.
	ShowDetail bool
}

// Clone returns a deep copy of the node. The payload is copied by value so
// the clone shares no mutable references with the original.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Payload = ClonePayload(n.Payload)
	return &out
}

// ClonePayload deep-copies a payload map. Nested maps and slices are copied
// recursively; scalar values are copied by assignment.
func ClonePayload(p map[string]any) map[string]any {
	if p == nil {
		return nil
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return ClonePayload(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
