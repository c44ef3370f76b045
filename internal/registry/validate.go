package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/ctxlog"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/hclutil"
)

// ErrInvalidOverride is returned when a payload override fails a
// registry-declared field validator.
var ErrInvalidOverride = errors.New("invalid override payload")

var validPositions = map[string]bool{"left": true, "right": true, "top": true, "bottom": true}

// Validate performs a consistency check over every registered definition:
// handle ids and positions must be valid, and declared defaults must satisfy
// their own field types. Go-registered and manifest-registered kinds go
// through the same check.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, kind := range r.Kinds() {
		def := r.defs[kind]
		seen := make(map[string]bool, len(def.Handles))
		for _, h := range def.Handles {
			if h.ID == "" {
				errs = append(errs, fmt.Sprintf("kind %q: handle with empty id", kind))
				continue
			}
			if seen[h.ID] {
				errs = append(errs, fmt.Sprintf("kind %q: duplicate handle %q", kind, h.ID))
			}
			seen[h.ID] = true
			if !validPositions[h.Position] {
				errs = append(errs, fmt.Sprintf("kind %q: handle %q has invalid position %q", kind, h.ID, h.Position))
			}
			if h.Kind != SourceHandle && h.Kind != TargetHandle {
				errs = append(errs, fmt.Sprintf("kind %q: handle %q has invalid kind %q", kind, h.ID, h.Kind))
			}
		}
		for field, want := range def.FieldTypes {
			v, ok := def.Defaults[field]
			if !ok || v == nil {
				continue
			}
			if err := hclutil.CheckGoValue(v, want); err != nil {
				errs = append(errs, fmt.Sprintf("kind %q: default for field %q: %v", kind, field, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	logger.Debug("registry validation passed", ctxlog.Category(ctxlog.CategoryGraph), "kinds", r.Len())
	return nil
}

// ValidateOverrides checks a payload override set against a definition's
// declared field types. Fields without a declared type are free-form.
func ValidateOverrides(def *Definition, overrides map[string]any) error {
	for field, v := range overrides {
		want, ok := def.FieldTypes[field]
		if !ok {
			continue
		}
		if v == nil {
			continue
		}
		if err := hclutil.CheckGoValue(v, want); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrInvalidOverride, field, err)
		}
	}
	return nil
}
