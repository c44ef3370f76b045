// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Jayrr-Dev
//
// This file defines the node construction specification consumed by the
// factory.
//
// Why a formal Definition?
//
// By declaring a node kind's handles, default payload and field types as
// data, the system can validate user edits against a contract instead of
// probing payload shapes at runtime. The same declaration drives canonical
// value extraction, so behavior per kind is explicit and testable.
package registry

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/value"
)

// HandleKind distinguishes the direction of a handle.
type HandleKind string

const (
	// SourceHandle emits data to downstream nodes.
	SourceHandle HandleKind = "source"
	// TargetHandle receives data from upstream nodes.
	TargetHandle HandleKind = "target"
)

// Handle is one connection point on a node kind.
type Handle struct {
	// ID names the handle, unique within the kind.
	ID string
	// Kind is the handle direction.
	Kind HandleKind
	// Position is the canvas side the handle renders on: left, right, top
	// or bottom.
	Position string
	// Auxiliary handles do not count as primary inputs for head detection.
	Auxiliary bool
}

// Definition is the full construction specification of one node kind.
type Definition struct {
	// Kind is the registered name, e.g. "createText".
	Kind string
	// Category groups kinds in the palette, e.g. "create" or "view".
	Category string
	// Deletable is the default deletability of constructed nodes.
	Deletable bool
	// ShowDetail is the default display mode of constructed nodes.
	ShowDetail bool
	// Handles lists the kind's connection points.
	Handles []Handle
	// Defaults is the default payload merged under user overrides.
	Defaults map[string]any
	// FieldTypes declares per-field type constraints for payload overrides.
	// Fields absent from the map are free-form.
	FieldTypes map[string]cty.Type
	// Extractor picks the canonical display/propagation value. Nil kinds
	// use the documented fallback field order.
	Extractor value.Extractor
}
