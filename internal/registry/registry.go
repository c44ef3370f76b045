package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
)

// ErrUnknownKind is returned when a kind has no registered definition.
var ErrUnknownKind = errors.New("unknown node kind")

// Module is the interface compiled-in node kind collections implement to be
// registered at startup.
type Module interface {
	Register(r *Registry)
}

// Registry holds all node kind definitions for a single editor instance.
type Registry struct {
	defs map[string]*Definition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition. Registering the same kind twice is a
// programmer error and panics, matching startup-time registration semantics.
func (r *Registry) Register(def *Definition) {
	if def.Kind == "" {
		panic("registry: definition with empty kind")
	}
	if _, exists := r.defs[def.Kind]; exists {
		panic(fmt.Sprintf("registry: node kind %q already registered", def.Kind))
	}
	r.defs[def.Kind] = def
}

// Lookup returns the definition for a kind.
func (r *Registry) Lookup(kind string) (*Definition, bool) {
	def, ok := r.defs[kind]
	return def, ok
}

// Kinds returns all registered kind names in sorted order.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.defs))
	for kind := range r.defs {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of registered kinds.
func (r *Registry) Len() int {
	return len(r.defs)
}

// AuxiliaryHandle reports whether a handle of a kind is auxiliary, either by
// declaration or by the aux id prefix convention.
func (r *Registry) AuxiliaryHandle(kind, handleID string) bool {
	if graph.IsAuxiliaryHandle(handleID) {
		return true
	}
	def, ok := r.defs[kind]
	if !ok {
		return false
	}
	for _, h := range def.Handles {
		if h.ID == handleID {
			return h.Auxiliary
		}
	}
	return false
}
