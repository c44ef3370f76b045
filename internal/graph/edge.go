package graph

import (
	"fmt"
	"strings"
)

// AuxHandlePrefix marks auxiliary handles. An edge arriving on an auxiliary
// target handle does not disqualify a node from being a propagation head.
const AuxHandlePrefix = "aux"

// Edge is a directed connection between two node handles.
type Edge struct {
	// ID is the unique identifier of the edge.
	ID string
	// Source and Target reference nodes currently in the graph.
	Source string
	Target string
	// SourceHandle and TargetHandle name the specific handles the edge
	// attaches to on each endpoint.
	SourceHandle string
	TargetHandle string
}

// ConnectionID derives a deterministic edge identifier from its endpoints.
func ConnectionID(source, sourceHandle, target, targetHandle string) string {
	return fmt.Sprintf("e:%s.%s->%s.%s", source, sourceHandle, target, targetHandle)
}

// IsAuxiliaryHandle reports whether a handle id names an auxiliary handle.
func IsAuxiliaryHandle(handle string) bool {
	return strings.HasPrefix(handle, AuxHandlePrefix)
}
