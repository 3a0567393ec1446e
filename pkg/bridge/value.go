// Package bridge turns raw blob bytes into typed values. The runtime type
// tag of a query element picks the wire representation; the caller's
// requested Go type picks the conversion. Both decisions are single
// switches in this package.
package bridge

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

var (
	// ErrDatatypeMismatch is returned for conversions the bridge cannot
	// perform, such as reading a string field as a number.
	ErrDatatypeMismatch = errors.New("datatype mismatch")

	// ErrVoid is returned when reading an element that carries no data.
	ErrVoid = errors.New("cannot convert void type")

	// ErrUnknownType is returned for tags outside the known set.
	ErrUnknownType = errors.New("unknown data type")
)

// InvalidEnumName is produced for enum values that have no key.
const InvalidEnumName = "Invalid"

// Value is one decoded blob field.
type Value struct {
	Type   pm.DataType
	EnumID pm.Enum

	f float64
	i int64
	u uint64
	b bool
	s string
}

func Float64(v float64) Value { return Value{Type: pm.DataTypeDouble, f: v} }

func Int32(v int32) Value { return Value{Type: pm.DataTypeInt32, i: int64(v)} }

func Uint32(v uint32) Value { return Value{Type: pm.DataTypeUint32, u: uint64(v)} }

func Uint64(v uint64) Value { return Value{Type: pm.DataTypeUint64, u: v} }

func Bool(v bool) Value { return Value{Type: pm.DataTypeBool, b: v} }

func String(v string) Value { return Value{Type: pm.DataTypeString, s: v} }

func EnumValue(enum pm.Enum, v int32) Value {
	return Value{Type: pm.DataTypeEnum, EnumID: enum, i: int64(v)}
}

// Void is the value of an unavailable element.
func Void() Value { return Value{Type: pm.DataTypeVoid} }

func (v Value) String() string {
	switch v.Type {
	case pm.DataTypeDouble:
		return fmt.Sprintf("%g", v.f)
	case pm.DataTypeInt32:
		return fmt.Sprintf("%d", v.i)
	case pm.DataTypeUint32, pm.DataTypeUint64:
		return fmt.Sprintf("%d", v.u)
	case pm.DataTypeEnum:
		return fmt.Sprintf("%s(%d)", v.EnumID, v.i)
	case pm.DataTypeString:
		return v.s
	case pm.DataTypeBool:
		return fmt.Sprintf("%t", v.b)
	case pm.DataTypeVoid:
		return "<void>"
	default:
		return fmt.Sprintf("<%s>", v.Type)
	}
}

// Decode reads the field of type dt at offset. enumID is recorded on enum
// values so they can later be resolved to names.
func Decode(buf blob.Buffer, offset uint64, dt pm.DataType, enumID pm.Enum) (Value, error) {
	switch dt {
	case pm.DataTypeDouble:
		f, err := buf.Float64At(offset)
		return Float64(f), err
	case pm.DataTypeInt32:
		i, err := buf.Int32At(offset)
		return Int32(i), err
	case pm.DataTypeUint32:
		u, err := buf.Uint32At(offset)
		return Uint32(u), err
	case pm.DataTypeEnum:
		i, err := buf.Int32At(offset)
		return EnumValue(enumID, i), err
	case pm.DataTypeString:
		raw, err := buf.StringAt(offset, pm.StringCapacity)
		if err != nil {
			return Value{}, err
		}
		return String(decodeNarrow(raw)), nil
	case pm.DataTypeUint64:
		u, err := buf.Uint64At(offset)
		return Uint64(u), err
	case pm.DataTypeBool:
		b, err := buf.BoolAt(offset)
		return Bool(b), err
	case pm.DataTypeVoid:
		return Void(), ErrVoid
	default:
		return Value{}, fmt.Errorf("%w: %d", ErrUnknownType, int32(dt))
	}
}

// Encode writes v at offset using its own type tag.
func Encode(buf blob.Buffer, offset uint64, v Value) error {
	switch v.Type {
	case pm.DataTypeDouble:
		return buf.PutFloat64(offset, v.f)
	case pm.DataTypeInt32, pm.DataTypeEnum:
		return buf.PutInt32(offset, int32(v.i))
	case pm.DataTypeUint32:
		return buf.PutUint32(offset, uint32(v.u))
	case pm.DataTypeString:
		return buf.PutString(offset, pm.StringCapacity, v.s)
	case pm.DataTypeUint64:
		return buf.PutUint64(offset, v.u)
	case pm.DataTypeBool:
		return buf.PutBool(offset, v.b)
	case pm.DataTypeVoid:
		return ErrVoid
	default:
		return fmt.Errorf("%w: %d", ErrUnknownType, int32(v.Type))
	}
}

// decodeNarrow converts provider strings to UTF-8. Providers write either
// UTF-8 or the Windows ANSI code page; bytes that are not valid UTF-8 are
// taken as Windows-1252.
func decodeNarrow(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(s)
}
