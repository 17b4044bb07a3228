package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/rpgbaker/internal/value"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeLiteral evaluates an attribute without any variables or functions
// and converts the result into a literal value.
func decodeLiteral(attr *hclsyntax.Attribute, src []byte) (value.Value, hcl.Diagnostics) {
	cv, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return value.Void(), diags
	}
	rng := attr.Expr.Range()

	if cv.IsNull() {
		return value.Void(), nil
	}
	if cv.Type() == cty.Number && cv.IsKnown() {
		if isFloatLiteral(rng.SliceBytes(src)) {
			v, err := value.FloatFromCty(cv)
			if err != nil {
				return value.Void(), literalDiag(attr, err)
			}
			return v, nil
		}
		if bf := cv.AsBigFloat(); !bf.IsInt() {
			return value.Void(), literalDiag(attr, fmt.Errorf("%s is not a whole number; write a decimal point or exponent for a float", bf.Text('g', -1)))
		}
		var i int32
		if err := gocty.FromCtyValue(cv, &i); err != nil {
			return value.Void(), literalDiag(attr, fmt.Errorf("integer %s does not fit in 32 bits", cv.AsBigFloat().String()))
		}
		return value.Int(i), nil
	}

	v, err := value.FromCty(cv)
	if err != nil {
		return value.Void(), literalDiag(attr, err)
	}
	return v, nil
}

func literalDiag(attr *hclsyntax.Attribute, err error) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid literal",
		Detail:   fmt.Sprintf("Field %q: %s. Literals are null, numbers, or strings.", attr.Name, err),
		Subject:  attr.Expr.Range().Ptr(),
	}}
}
