package graph

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNodeNotFound is returned when an operation references a node id that
	// is not present in the snapshot.
	ErrNodeNotFound = errors.New("node not found")
	// ErrInvalidEdge is returned when an edge fails the validity rules.
	ErrInvalidEdge = errors.New("invalid edge")
)

// Snapshot is a read-only view of the node and edge collections at one point
// in time. Mutation helpers return a new Snapshot; the input is never written.
type Snapshot struct {
	Nodes []*Node
	Edges []*Edge
}

// Node looks up a node by id.
func (s Snapshot) Node(id string) (*Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Parents returns the incoming edges of a node, ordered by source node id and
// then source handle so downstream consumers see a deterministic order.
func (s Snapshot) Parents(id string) []*Edge {
	var in []*Edge
	for _, e := range s.Edges {
		if e.Target == id {
			in = append(in, e)
		}
	}
	sort.Slice(in, func(i, j int) bool {
		if in[i].Source != in[j].Source {
			return in[i].Source < in[j].Source
		}
		return in[i].SourceHandle < in[j].SourceHandle
	})
	return in
}

// Children returns the outgoing edges of a node, ordered by target node id
// and then target handle.
func (s Snapshot) Children(id string) []*Edge {
	var out []*Edge
	for _, e := range s.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].TargetHandle < out[j].TargetHandle
	})
	return out
}

// AddNode returns a snapshot with the node appended. A node with a duplicate
// id replaces the existing entry rather than producing two nodes with one id.
func (s Snapshot) AddNode(n *Node) Snapshot {
	nodes := make([]*Node, 0, len(s.Nodes)+1)
	for _, existing := range s.Nodes {
		if existing.ID != n.ID {
			nodes = append(nodes, existing)
		}
	}
	nodes = append(nodes, n)
	return Snapshot{Nodes: nodes, Edges: s.Edges}
}

// RemoveNode returns a snapshot without the named node. Every edge touching
// the node is pruned so no dangling references survive.
func (s Snapshot) RemoveNode(id string) Snapshot {
	nodes := make([]*Node, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	edges := make([]*Edge, 0, len(s.Edges))
	for _, e := range s.Edges {
		if e.Source != id && e.Target != id {
			edges = append(edges, e)
		}
	}
	return Snapshot{Nodes: nodes, Edges: edges}
}

// AddEdge validates and appends an edge. Both endpoints must exist, the edge
// must not be a self-loop, and the same handle pair must not already be
// connected.
func (s Snapshot) AddEdge(e *Edge) (Snapshot, error) {
	if e.Source == e.Target {
		return s, fmt.Errorf("%w: self-loop %s -> %s", ErrInvalidEdge, e.Source, e.Target)
	}
	if _, ok := s.Node(e.Source); !ok {
		return s, fmt.Errorf("%w: edge source %q", ErrNodeNotFound, e.Source)
	}
	if _, ok := s.Node(e.Target); !ok {
		return s, fmt.Errorf("%w: edge target %q", ErrNodeNotFound, e.Target)
	}
	for _, existing := range s.Edges {
		if existing.Source == e.Source && existing.SourceHandle == e.SourceHandle &&
			existing.Target == e.Target && existing.TargetHandle == e.TargetHandle {
			return s, fmt.Errorf("%w: duplicate connection %s", ErrInvalidEdge, existing.ID)
		}
	}
	edges := make([]*Edge, len(s.Edges), len(s.Edges)+1)
	copy(edges, s.Edges)
	edges = append(edges, e)
	return Snapshot{Nodes: s.Nodes, Edges: edges}, nil
}

// RemoveEdge returns a snapshot without the named edge.
func (s Snapshot) RemoveEdge(id string) Snapshot {
	edges := make([]*Edge, 0, len(s.Edges))
	for _, e := range s.Edges {
		if e.ID != id {
			edges = append(edges, e)
		}
	}
	return Snapshot{Nodes: s.Nodes, Edges: edges}
}

// UpdateNodePayload returns a snapshot in which the named node's payload has
// the partial map merged over it. The node is replaced by a clone; the
// original node value is untouched.
func (s Snapshot) UpdateNodePayload(id string, partial map[string]any) (Snapshot, error) {
	idx := -1
	for i, n := range s.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return s, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	updated := s.Nodes[idx].Clone()
	if updated.Payload == nil {
		updated.Payload = make(map[string]any, len(partial))
	}
	for k, v := range partial {
		updated.Payload[k] = cloneValue(v)
	}
	nodes := make([]*Node, len(s.Nodes))
	copy(nodes, s.Nodes)
	nodes[idx] = updated
	return Snapshot{Nodes: nodes, Edges: s.Edges}, nil
}

// SetActivation returns a snapshot in which each node named in the batch has
// its Active flag set to the batched value. Unknown ids are skipped; the
// caller logs them.
func (s Snapshot) SetActivation(batch map[string]bool) Snapshot {
	nodes := make([]*Node, len(s.Nodes))
	for i, n := range s.Nodes {
		if active, ok := batch[n.ID]; ok && n.Active != active {
			clone := n.Clone()
			clone.Active = active
			nodes[i] = clone
			continue
		}
		nodes[i] = n
	}
	return Snapshot{Nodes: nodes, Edges: s.Edges}
}
