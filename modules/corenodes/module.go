// Package corenodes registers the compiled-in node kinds every editor
// instance ships with. Custom kinds come in through HCL manifests; these are
// the ones the palette cannot work without.
package corenodes

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/registry"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the core node kinds.
func (m Module) Register(r *registry.Registry) {
	r.Register(&registry.Definition{
		Kind:      "createText",
		Category:  "create",
		Deletable: true,
		Handles: []registry.Handle{
			{ID: "output", Kind: registry.SourceHandle, Position: "right"},
			{ID: "aux-activate", Kind: registry.TargetHandle, Position: "top", Auxiliary: true},
		},
		Defaults:   map[string]any{"text": ""},
		FieldTypes: map[string]cty.Type{"text": cty.String},
		Extractor:  value.Field("text"),
	})

	r.Register(&registry.Definition{
		Kind:      "createNumber",
		Category:  "create",
		Deletable: true,
		Handles: []registry.Handle{
			{ID: "output", Kind: registry.SourceHandle, Position: "right"},
		},
		Defaults:   map[string]any{"result": float64(0)},
		FieldTypes: map[string]cty.Type{"result": cty.Number},
		Extractor:  value.Field("result"),
	})

	r.Register(&registry.Definition{
		Kind:      "viewText",
		Category:  "view",
		Deletable: true,
		Handles: []registry.Handle{
			{ID: "input", Kind: registry.TargetHandle, Position: "left"},
			{ID: "output", Kind: registry.SourceHandle, Position: "right"},
		},
		Defaults:  map[string]any{"inputs": nil},
		Extractor: value.Field("inputs"),
	})

	r.Register(&registry.Definition{
		Kind:      "triggerToggle",
		Category:  "trigger",
		Deletable: true,
		Handles: []registry.Handle{
			{ID: "output", Kind: registry.SourceHandle, Position: "right"},
		},
		Defaults:   map[string]any{"isOn": false},
		FieldTypes: map[string]cty.Type{"isOn": cty.Bool},
		Extractor:  value.Field("isOn"),
	})
}
