package hclutil

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// CtyToGo converts a literal cty.Value into plain Go data suitable for a
// node payload map.
func CtyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, err := CtyToGo(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			item, err := CtyToGo(ev)
			if err != nil {
				return nil, err
			}
			out[kv.AsString()] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported manifest value type %s", ty.FriendlyName())
	}
}

// CheckGoValue reports whether a plain Go value satisfies a declared cty
// type constraint. DynamicPseudoType accepts everything.
func CheckGoValue(v any, want cty.Type) error {
	if want == cty.NilType || want.Equals(cty.DynamicPseudoType) {
		return nil
	}
	implied, err := gocty.ImpliedType(v)
	if err != nil {
		return fmt.Errorf("value has no cty equivalent: %w", err)
	}
	ctyVal, err := gocty.ToCtyValue(v, implied)
	if err != nil {
		return fmt.Errorf("value does not encode: %w", err)
	}
	if _, err := convert.Convert(ctyVal, want); err != nil {
		return fmt.Errorf("value is not assignable to %s: %w", want.FriendlyName(), err)
	}
	return nil
}
