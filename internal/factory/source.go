package factory

import (
	"fmt"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/registry"
)

// Source is one backing construction path. Build returns
// registry.ErrUnknownKind when the source cannot satisfy the kind.
type Source interface {
	Name() string
	Build(kind string, pos graph.Position) (*graph.Node, error)
}

// registrySource builds nodes from the declarative registry.
type registrySource struct {
	reg *registry.Registry
}

func (s *registrySource) Name() string { return "registry" }

func (s *registrySource) Build(kind string, pos graph.Position) (*graph.Node, error) {
	def, ok := s.reg.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownKind, kind)
	}
	return &graph.Node{
		Kind:       kind,
		Position:   pos,
		Payload:    graph.ClonePayload(def.Defaults),
		Deletable:  def.Deletable,
		ShowDetail: def.ShowDetail,
	}, nil
}

// defaultSpec is one entry of the built-in default-construction table.
type defaultSpec struct {
	category  string
	deletable bool
	payload   map[string]any
}

// baseKinds is the low-level construction table: the minimal payloads the
// editor can always fall back to when a kind has no declarative definition.
var baseKinds = map[string]defaultSpec{
	"createText":    {category: "create", deletable: true, payload: map[string]any{"text": ""}},
	"createNumber":  {category: "create", deletable: true, payload: map[string]any{"result": float64(0)}},
	"viewText":      {category: "view", deletable: true, payload: map[string]any{"inputs": nil}},
	"triggerToggle": {category: "trigger", deletable: true, payload: map[string]any{"isOn": false}},
	"testNode":      {category: "test", deletable: true, payload: map[string]any{"outputs": nil}},
}

// defaultSource builds nodes from the built-in table.
type defaultSource struct{}

func (s *defaultSource) Name() string { return "defaults" }

func (s *defaultSource) Build(kind string, pos graph.Position) (*graph.Node, error) {
	spec, ok := baseKinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownKind, kind)
	}
	return &graph.Node{
		Kind:      kind,
		Position:  pos,
		Payload:   graph.ClonePayload(spec.payload),
		Deletable: spec.deletable,
	}, nil
}
