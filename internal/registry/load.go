// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Jayrr-Dev
//
// This file parses declarative node kind manifests from HCL.
//
// A manifest declares node kinds as data:
//
//	node "createText" {
//	  category  = "create"
//	  deletable = true
//	  extract   = "text"
//
//	  handle "output" {
//	    kind     = "source"
//	    position = "right"
//	  }
//
//	  field "text" {
//	    type    = string
//	    default = ""
//	  }
//	}
//
// Defaults are literal values; they are type-checked against the declared
// field type at load time so a bad manifest fails at startup, not on the
// canvas.
package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/ctxlog"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/fsutil"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/hclutil"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/value"
)

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "node", LabelNames: []string{"kind"}},
	},
}

var nodeBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "category"},
		{Name: "deletable"},
		{Name: "show_detail"},
		{Name: "extract"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "handle", LabelNames: []string{"id"}},
		{Type: "field", LabelNames: []string{"name"}},
	},
}

var handleBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "kind", Required: true},
		{Name: "position"},
		{Name: "auxiliary"},
	},
}

var fieldBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type", Required: true},
		{Name: "default"},
	},
}

// LoadManifests discovers every .hcl manifest under path and registers the
// node kinds declared in them.
func (r *Registry) LoadManifests(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	filePaths, err := fsutil.FindByExtension(path, ".hcl")
	if err != nil {
		logger.Error("failed to walk manifest directory", ctxlog.Category(ctxlog.CategoryError), "path", path, "error", err)
		return err
	}
	if len(filePaths) == 0 {
		logger.Warn("no .hcl manifests found", ctxlog.Category(ctxlog.CategoryGraph), "path", path)
		return nil
	}

	parser := hclparse.NewParser()
	loaded := 0
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse manifest %s: %w", filePath, diags)
		}
		n, err := r.registerFromBody(hclFile.Body, filePath)
		if err != nil {
			return err
		}
		loaded += n
		logger.Debug("manifest loaded", ctxlog.Category(ctxlog.CategoryGraph), "file", filePath, "kinds", n)
	}

	logger.Info("node kind manifests loaded", ctxlog.Category(ctxlog.CategoryGraph), "files", len(filePaths), "kinds", loaded)
	return nil
}

// LoadManifestSource registers node kinds from in-memory HCL source. Tests
// and embedded defaults use this instead of the filesystem.
func (r *Registry) LoadManifestSource(src, filename string) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL([]byte(src), filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}
	_, err := r.registerFromBody(hclFile.Body, filename)
	return err
}

func (r *Registry) registerFromBody(body hcl.Body, filename string) (int, error) {
	content, diags := body.Content(rootSchema)
	if diags.HasErrors() {
		return 0, fmt.Errorf("invalid manifest %s: %w", filename, diags)
	}

	count := 0
	for _, block := range content.Blocks.OfType("node") {
		def, err := decodeNodeBlock(block)
		if err != nil {
			return count, fmt.Errorf("manifest %s: %w", filename, err)
		}
		if _, exists := r.defs[def.Kind]; exists {
			return count, fmt.Errorf("manifest %s: node kind %q already registered", filename, def.Kind)
		}
		r.defs[def.Kind] = def
		count++
	}
	return count, nil
}

func decodeNodeBlock(block *hcl.Block) (*Definition, error) {
	kind := block.Labels[0]
	body, diags := block.Body.Content(nodeBodySchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("node %q: %w", kind, diags)
	}

	def := &Definition{
		Kind:       kind,
		Deletable:  true,
		Defaults:   make(map[string]any),
		FieldTypes: make(map[string]cty.Type),
	}

	if attr, ok := body.Attributes["category"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &def.Category); diags.HasErrors() {
			return nil, fmt.Errorf("node %q category: %w", kind, diags)
		}
	}
	if attr, ok := body.Attributes["deletable"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &def.Deletable); diags.HasErrors() {
			return nil, fmt.Errorf("node %q deletable: %w", kind, diags)
		}
	}
	if attr, ok := body.Attributes["show_detail"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &def.ShowDetail); diags.HasErrors() {
			return nil, fmt.Errorf("node %q show_detail: %w", kind, diags)
		}
	}
	if attr, ok := body.Attributes["extract"]; ok {
		var field string
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &field); diags.HasErrors() {
			return nil, fmt.Errorf("node %q extract: %w", kind, diags)
		}
		def.Extractor = value.Field(field)
	}

	for _, hb := range body.Blocks.OfType("handle") {
		h, err := decodeHandleBlock(hb)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", kind, err)
		}
		def.Handles = append(def.Handles, h)
	}

	for _, fb := range body.Blocks.OfType("field") {
		name := fb.Labels[0]
		fieldType, defaultVal, err := decodeFieldBlock(fb)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", kind, err)
		}
		def.FieldTypes[name] = fieldType
		if defaultVal != nil {
			def.Defaults[name] = defaultVal
		}
	}

	return def, nil
}

func decodeHandleBlock(block *hcl.Block) (Handle, error) {
	id := block.Labels[0]
	body, diags := block.Body.Content(handleBodySchema)
	if diags.HasErrors() {
		return Handle{}, fmt.Errorf("handle %q: %w", id, diags)
	}

	h := Handle{ID: id, Position: "left"}
	var kindStr string
	if diags := gohcl.DecodeExpression(body.Attributes["kind"].Expr, nil, &kindStr); diags.HasErrors() {
		return Handle{}, fmt.Errorf("handle %q kind: %w", id, diags)
	}
	switch HandleKind(kindStr) {
	case SourceHandle, TargetHandle:
		h.Kind = HandleKind(kindStr)
	default:
		return Handle{}, fmt.Errorf("handle %q: kind must be %q or %q, got %q", id, SourceHandle, TargetHandle, kindStr)
	}

	if attr, ok := body.Attributes["position"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &h.Position); diags.HasErrors() {
			return Handle{}, fmt.Errorf("handle %q position: %w", id, diags)
		}
	}
	if attr, ok := body.Attributes["auxiliary"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &h.Auxiliary); diags.HasErrors() {
			return Handle{}, fmt.Errorf("handle %q auxiliary: %w", id, diags)
		}
	}
	return h, nil
}

func decodeFieldBlock(block *hcl.Block) (cty.Type, any, error) {
	name := block.Labels[0]
	body, diags := block.Body.Content(fieldBodySchema)
	if diags.HasErrors() {
		return cty.NilType, nil, fmt.Errorf("field %q: %w", name, diags)
	}

	fieldType, typeDiags := hclutil.TypeFromExpr(body.Attributes["type"].Expr)
	if typeDiags.HasErrors() {
		return cty.NilType, nil, fmt.Errorf("field %q: %w", name, typeDiags)
	}

	attr, ok := body.Attributes["default"]
	if !ok {
		return fieldType, nil, nil
	}

	// Defaults must be literal values; no eval context is provided.
	ctyVal, valDiags := attr.Expr.Value(nil)
	if valDiags.HasErrors() {
		return cty.NilType, nil, fmt.Errorf("field %q default: %w", name, valDiags)
	}
	converted, err := convert.Convert(ctyVal, fieldType)
	if err != nil {
		return cty.NilType, nil, fmt.Errorf("field %q: default is not assignable to declared type: %w", name, err)
	}
	goVal, err := hclutil.CtyToGo(converted)
	if err != nil {
		return cty.NilType, nil, fmt.Errorf("field %q default: %w", name, err)
	}
	return fieldType, goVal, nil
}
