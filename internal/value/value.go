// Package value normalizes heterogeneous node payloads into one canonical
// display/propagation value.
//
// Node kinds that declare an Extractor in the registry get explicit, testable
// extraction. Kinds without one fall back to a single documented field
// priority order; the historical per-version orders collapse to this one.
package value

import (
	"encoding/json"
	"strconv"
)

// Extractor picks the canonical value out of a node payload. It returns
// false when the payload carries no usable value.
type Extractor func(payload map[string]any) (any, bool)

// fallbackFields is the canonical field priority for kinds with no declared
// extractor. First present non-nil field wins.
var fallbackFields = []string{"outputs", "result", "processingResult", "store", "text"}

// Canonical returns the formatted canonical value of a payload. ext may be
// nil, in which case the fallback field order is probed.
func Canonical(ext Extractor, payload map[string]any) (string, bool) {
	if ext != nil {
		if v, ok := ext(payload); ok {
			return Format(v), true
		}
		return "", false
	}
	for _, field := range fallbackFields {
		if v, ok := payload[field]; ok && v != nil {
			return Format(v), true
		}
	}
	return "", false
}

// Field returns an Extractor reading a single named payload field. This is
// the common case for registry declarations.
func Field(name string) Extractor {
	return func(payload map[string]any) (any, bool) {
		v, ok := payload[name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

// Format renders a payload value for display and propagation. Strings pass
// through verbatim, numbers are trimmed, booleans render as true/false, and
// composites render as compact JSON.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
