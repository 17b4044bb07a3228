package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MarshalJSON encodes the value untagged: null, an integer, a number with a
// fraction or exponent, or a string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case VoidType:
		return []byte("null"), nil
	case IntType:
		return []byte(strconv.FormatInt(int64(v.i), 10)), nil
	case FloatType:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("cannot encode %s as JSON", v)
		}
		return []byte(FormatFloat(v.f)), nil
	case TextType:
		return json.Marshal(v.s)
	default:
		return nil, fmt.Errorf("cannot encode value of %s", v.typ)
	}
}

// UnmarshalJSON decodes the untagged form written by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty value")
	}
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("invalid value %s", data)
		}
		*v = Void()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	case '{', '[', 't', 'f':
		return fmt.Errorf("unsupported literal %s", data)
	}

	num := string(data)
	if strings.ContainsAny(num, ".eE") {
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return fmt.Errorf("invalid float %s: %w", num, err)
		}
		*v = Float(f)
		return nil
	}
	i, err := strconv.ParseInt(num, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid int %s: %w", num, err)
	}
	*v = Int(int32(i))
	return nil
}

func (t BaseType) MarshalText() ([]byte, error) {
	if _, ok := baseTypeNames[t]; !ok {
		return nil, fmt.Errorf("unknown base type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *BaseType) UnmarshalText(text []byte) error {
	parsed, err := ParseBaseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
