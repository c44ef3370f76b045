// Package fingerprint computes stable change-detection keys from the payloads
// of a node's direct parents.
//
// The fingerprint is a pure function of parent payload content: identical
// parent payload sets always yield the identical string, regardless of map
// iteration order or call count, which makes it safe to use as a memoization
// key. The package never returns an error; any marshalling anomaly degrades
// to the empty-set fingerprint.
package fingerprint

import (
	"encoding/json"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
)

// EmptySet is the fingerprint of a node with no parents.
const EmptySet = "[]"

// Parents returns the fingerprint of a node's direct parents in the snapshot.
// Parent payloads are serialized in the snapshot's deterministic parent order
// (source node id, then source handle); encoding/json sorts map keys, so the
// serialization is canonical for equal payload content.
func Parents(s graph.Snapshot, nodeID string) string {
	edges := s.Parents(nodeID)
	if len(edges) == 0 {
		return EmptySet
	}

	entries := make([]json.RawMessage, 0, len(edges))
	for _, e := range edges {
		parent, ok := s.Node(e.Source)
		if !ok {
			// Dangling edges are pruned on removal; seeing one here means the
			// snapshot is mid-edit. Skip rather than fail.
			continue
		}
		raw, err := json.Marshal(parent.Payload)
		if err != nil {
			return EmptySet
		}
		entries = append(entries, raw)
	}
	if len(entries) == 0 {
		return EmptySet
	}

	out, err := json.Marshal(entries)
	if err != nil {
		return EmptySet
	}
	return string(out)
}
