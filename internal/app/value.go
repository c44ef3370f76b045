package app

import (
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/fingerprint"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/value"
)

// NodeValue resolves a node's canonical display value. The node's own payload
// is consulted first through its kind's declared extractor; when the node
// carries no value of its own, the value is derived from its parents and
// memoized under the dependency fingerprint, so repeated lookups with
// unchanged parent payloads skip the derivation entirely.
func (a *App) NodeValue(s graph.Snapshot, id string) (string, bool) {
	node, ok := s.Node(id)
	if !ok {
		return "", false
	}

	if v, ok := value.Canonical(a.extractor(node.Kind), node.Payload); ok {
		return v, true
	}

	fp := fingerprint.Parents(s, id)
	if fp == fingerprint.EmptySet {
		return "", false
	}
	if v, hit := a.valueMemo[fp]; hit {
		return v, true
	}

	// First parent with a canonical value wins; parents arrive in
	// deterministic order.
	for _, e := range s.Parents(id) {
		parent, ok := s.Node(e.Source)
		if !ok {
			continue
		}
		if v, ok := value.Canonical(a.extractor(parent.Kind), parent.Payload); ok {
			a.valueMemo[fp] = v
			return v, true
		}
	}
	return "", false
}

// extractor returns the kind's declared extractor, or nil for the documented
// fallback field order.
func (a *App) extractor(kind string) value.Extractor {
	if def, ok := a.registry.Lookup(kind); ok {
		return def.Extractor
	}
	return nil
}
