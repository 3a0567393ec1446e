package bridge

import (
	"fmt"

	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// Target lists the Go types a value can be converted to.
type Target interface {
	float64 | float32 | int | int32 | int64 | uint | uint32 | uint64 | bool | string
}

// EnumResolver looks up the strings of enum values. *enums.Map satisfies it.
type EnumResolver interface {
	Name(enum pm.Enum, value int32) string
	ShortName(enum pm.Enum, value int32) string
	Symbol(enum pm.Enum, value int32) string
}

// NameStyle selects which enum string EnumText returns.
type NameStyle int

const (
	NameStyleName NameStyle = iota
	NameStyleShortName
	NameStyleSymbol
)

// Convert converts v to T.
//
// Numbers convert to any numeric type (and to bool as non-zero). Enums
// convert to numbers as their raw value and to string as their display
// name. Strings convert only to string. Everything else is a mismatch.
func Convert[T Target](v Value, enums EnumResolver) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *string:
		s, err := toString(v, enums)
		if err != nil {
			return out, err
		}
		*p = s
		return out, nil
	case *bool:
		n, err := toNumber(v)
		if err != nil {
			return out, err
		}
		*p = n.nonZero()
		return out, nil
	}

	n, err := toNumber(v)
	if err != nil {
		return out, err
	}
	switch p := any(&out).(type) {
	case *float64:
		*p = n.asFloat()
	case *float32:
		*p = float32(n.asFloat())
	case *int:
		*p = int(n.asInt())
	case *int32:
		*p = int32(n.asInt())
	case *int64:
		*p = n.asInt()
	case *uint:
		*p = uint(n.asUint())
	case *uint32:
		*p = uint32(n.asUint())
	case *uint64:
		*p = n.asUint()
	}
	return out, nil
}

// EnumText returns the name or short name of an enum value, or
// InvalidEnumName if the value has no key. Non-enum values are a mismatch.
func EnumText(v Value, enums EnumResolver, style NameStyle) (string, error) {
	if v.Type != pm.DataTypeEnum {
		return "", fmt.Errorf("%w: %s is not an enum", ErrDatatypeMismatch, v.Type)
	}
	if enums == nil {
		return InvalidEnumName, nil
	}
	var s string
	switch style {
	case NameStyleShortName:
		s = enums.ShortName(v.EnumID, int32(v.i))
		if s == "" {
			// short names are optional, fall back to the display name
			s = enums.Name(v.EnumID, int32(v.i))
		}
	case NameStyleSymbol:
		s = enums.Symbol(v.EnumID, int32(v.i))
	default:
		s = enums.Name(v.EnumID, int32(v.i))
	}
	if s == "" {
		return InvalidEnumName, nil
	}
	return s, nil
}

func toString(v Value, enums EnumResolver) (string, error) {
	switch v.Type {
	case pm.DataTypeString:
		return v.s, nil
	case pm.DataTypeEnum:
		return EnumText(v, enums, NameStyleName)
	case pm.DataTypeVoid:
		return "", ErrVoid
	case pm.DataTypeDouble, pm.DataTypeInt32, pm.DataTypeUint32, pm.DataTypeUint64, pm.DataTypeBool:
		return "", fmt.Errorf("%w: cannot read %s as string", ErrDatatypeMismatch, v.Type)
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownType, int32(v.Type))
	}
}

// number carries a numeric value in its widest natural representation.
type number struct {
	kind byte // 'f', 'i' or 'u'
	f    float64
	i    int64
	u    uint64
}

func toNumber(v Value) (number, error) {
	switch v.Type {
	case pm.DataTypeDouble:
		return number{kind: 'f', f: v.f}, nil
	case pm.DataTypeInt32, pm.DataTypeEnum:
		return number{kind: 'i', i: v.i}, nil
	case pm.DataTypeUint32, pm.DataTypeUint64:
		return number{kind: 'u', u: v.u}, nil
	case pm.DataTypeBool:
		if v.b {
			return number{kind: 'u', u: 1}, nil
		}
		return number{kind: 'u'}, nil
	case pm.DataTypeString:
		return number{}, fmt.Errorf("%w: cannot read %s as number", ErrDatatypeMismatch, v.Type)
	case pm.DataTypeVoid:
		return number{}, ErrVoid
	default:
		return number{}, fmt.Errorf("%w: %d", ErrUnknownType, int32(v.Type))
	}
}

func (n number) asFloat() float64 {
	switch n.kind {
	case 'i':
		return float64(n.i)
	case 'u':
		return float64(n.u)
	default:
		return n.f
	}
}

func (n number) asInt() int64 {
	switch n.kind {
	case 'f':
		return int64(n.f)
	case 'u':
		return int64(n.u)
	default:
		return n.i
	}
}

func (n number) asUint() uint64 {
	switch n.kind {
	case 'f':
		return uint64(n.f)
	case 'i':
		return uint64(n.i)
	default:
		return n.u
	}
}

func (n number) nonZero() bool {
	switch n.kind {
	case 'f':
		return n.f != 0
	case 'i':
		return n.i != 0
	default:
		return n.u != 0
	}
}
