package value

import (
	"fmt"
	"strconv"
)

// BaseType is the expected shape of a slot, independent of what fills it.
type BaseType int

const (
	VoidType BaseType = iota
	IntType
	FloatType
	TextType
)

var baseTypeNames = map[BaseType]string{
	VoidType:  "void",
	IntType:   "int",
	FloatType: "float",
	TextType:  "text",
}

func (t BaseType) String() string {
	if name, ok := baseTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("BaseType(%d)", int(t))
}

// ParseBaseType is the inverse of BaseType.String.
func ParseBaseType(s string) (BaseType, error) {
	for t, name := range baseTypeNames {
		if name == s {
			return t, nil
		}
	}
	return VoidType, fmt.Errorf("unknown base type %q", s)
}

// Value is a tagged union of the values a block can evaluate to.
// The zero Value is Void.
type Value struct {
	typ BaseType
	i   int32
	f   float64
	s   string
}

// Void returns the value that carries no information.
func Void() Value { return Value{} }

// Int returns a 32-bit integer value.
func Int(i int32) Value { return Value{typ: IntType, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{typ: FloatType, f: f} }

// Text returns a text value.
func Text(s string) Value { return Value{typ: TextType, s: s} }

// BaseType classifies the value.
func (v Value) BaseType() BaseType { return v.typ }

func (v Value) IsVoid() bool { return v.typ == VoidType }

// Equal reports whether both values have the same type and payload.
func (v Value) Equal(o Value) bool { return v == o }

// AsInt returns the integer payload and whether v is an Int.
func (v Value) AsInt() (int32, bool) { return v.i, v.typ == IntType }

// AsFloat returns the float payload and whether v is a Float.
func (v Value) AsFloat() (float64, bool) { return v.f, v.typ == FloatType }

// AsText returns the text payload and whether v is Text.
func (v Value) AsText() (string, bool) { return v.s, v.typ == TextType }

// String renders the value the way the log block prints it.
func (v Value) String() string {
	switch v.typ {
	case IntType:
		return fmt.Sprintf("Int(%d)", v.i)
	case FloatType:
		return fmt.Sprintf("Float(%s)", FormatFloat(v.f))
	case TextType:
		return fmt.Sprintf("Text(%q)", v.s)
	default:
		return "Void"
	}
}

// FormatFloat renders f so that it always reads back as a float: whole
// numbers keep a trailing ".0".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, c := range s {
		switch c {
		case '.', 'e', 'E', 'N', 'I':
			return s
		}
	}
	return s + ".0"
}
