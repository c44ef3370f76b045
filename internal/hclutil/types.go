// Package hclutil holds the small HCL helpers shared by manifest parsing.
package hclutil

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// TypeFromExpr converts an HCL expression that represents a type keyword
// (e.g. the `string` identifier) into its corresponding cty.Type. Node
// payload fields only need the primitive keywords plus `any`.
func TypeFromExpr(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	traversal, hclDiags := hcl.AbsTraversalForExpr(expr)
	if hclDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a simple type keyword like 'string', 'number', 'bool' or 'any'.",
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}

	switch typeName := traversal.RootName(); typeName {
	case "string":
		return cty.String, diags
	case "number":
		return cty.Number, diags
	case "bool":
		return cty.Bool, diags
	case "any":
		return cty.DynamicPseudoType, diags
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   "Unknown type keyword '" + typeName + "'. Supported: string, number, bool, any.",
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}
}
