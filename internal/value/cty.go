package value

import (
	"fmt"
	"math"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToCty converts v into its cty equivalent. Void becomes a dynamic null.
func ToCty(v Value) cty.Value {
	switch v.typ {
	case IntType:
		return cty.NumberIntVal(int64(v.i))
	case FloatType:
		return cty.NumberFloatVal(v.f)
	case TextType:
		return cty.StringVal(v.s)
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

// FromCty converts a known cty value into a Value. Whole numbers that fit in
// 32 bits become Int; every other number becomes Float.
func FromCty(cv cty.Value) (Value, error) {
	if cv.IsNull() {
		return Void(), nil
	}
	if !cv.IsWhollyKnown() {
		return Void(), fmt.Errorf("value of type %s is not known", cv.Type().FriendlyName())
	}

	switch cv.Type() {
	case cty.String:
		var s string
		if err := gocty.FromCtyValue(cv, &s); err != nil {
			return Void(), err
		}
		return Text(s), nil
	case cty.Number:
		if cv.AsBigFloat().IsInt() {
			var i int32
			if err := gocty.FromCtyValue(cv, &i); err == nil {
				return Int(i), nil
			}
		}
		return FloatFromCty(cv)
	default:
		return Void(), fmt.Errorf("unsupported literal of type %s", cv.Type().FriendlyName())
	}
}

// FloatFromCty converts a number into a Float even when it is whole.
func FloatFromCty(cv cty.Value) (Value, error) {
	if cv.Type() != cty.Number || cv.IsNull() {
		return Void(), fmt.Errorf("expected a number, got %s", cv.Type().FriendlyName())
	}
	f, acc := cv.AsBigFloat().Float64()
	if acc != big.Exact && math.IsInf(f, 0) {
		return Void(), fmt.Errorf("number %s does not fit in a float", cv.AsBigFloat().String())
	}
	return Float(f), nil
}
