package bridge

import (
	"errors"
	"math"
	"testing"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/enums"
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

func presentModeEnums(t *testing.T) *enums.Map {
	t.Helper()
	root := intro.NewRoot(&intro.Tree{
		Enums: []intro.EnumDesc{{
			ID:     pm.EnumPresentMode,
			Symbol: "PM_PRESENT_MODE",
			Keys: []intro.EnumKeyDesc{
				{Value: int32(pm.PresentModeComposedFlip), Symbol: "PM_PRESENT_MODE_COMPOSED_FLIP", Name: "Composed: Flip", ShortName: "Cmp Flip"},
				{Value: int32(pm.PresentModeHardwareLegacyFlip), Symbol: "PM_PRESENT_MODE_HARDWARE_LEGACY_FLIP", Name: "Hardware: Legacy Flip"},
			},
		}},
	})
	m := enums.New()
	m.Refresh(root)
	return m
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"double", Float64(420.0)},
		{"negative int32", Int32(-17)},
		{"uint32", Uint32(math.MaxUint32)},
		{"uint64", Uint64(math.MaxUint64)},
		{"bool", Bool(true)},
		{"enum", EnumValue(pm.EnumPresentMode, int32(pm.PresentModeComposedFlip))},
		{"string", String("Game.exe")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := blob.NewBuffer(pm.StringCapacity + 8)
			if err := Encode(buf, 8, tt.value); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := Decode(buf, 8, tt.value.Type, tt.value.EnumID)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != tt.value {
				t.Errorf("expected %v, got %v", tt.value, got)
			}
		})
	}
}

func TestDecodeVoidAndUnknown(t *testing.T) {
	buf := blob.NewBuffer(8)

	if _, err := Decode(buf, 0, pm.DataTypeVoid, pm.EnumNull); !errors.Is(err, ErrVoid) {
		t.Errorf("expected ErrVoid, got %v", err)
	}
	if _, err := Decode(buf, 0, pm.DataType(99), pm.EnumNull); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
	if _, err := Decode(buf, 4, pm.DataTypeDouble, pm.EnumNull); !errors.Is(err, blob.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestConvertNumeric(t *testing.T) {
	v := Float64(30.75)

	f, err := Convert[float64](v, nil)
	if err != nil || f != 30.75 {
		t.Errorf("expected 30.75, got %v (err %v)", f, err)
	}
	i, err := Convert[int](v, nil)
	if err != nil || i != 30 {
		t.Errorf("expected 30, got %v (err %v)", i, err)
	}
	f32, err := Convert[float32](Uint32(7), nil)
	if err != nil || f32 != 7 {
		t.Errorf("expected 7, got %v (err %v)", f32, err)
	}
	b, err := Convert[bool](Uint64(0), nil)
	if err != nil || b {
		t.Errorf("expected false, got %v (err %v)", b, err)
	}
	u, err := Convert[uint64](Bool(true), nil)
	if err != nil || u != 1 {
		t.Errorf("expected 1, got %v (err %v)", u, err)
	}
}

func TestConvertEnum(t *testing.T) {
	m := presentModeEnums(t)
	v := EnumValue(pm.EnumPresentMode, int32(pm.PresentModeComposedFlip))

	name, err := Convert[string](v, m)
	if err != nil || name != "Composed: Flip" {
		t.Errorf("expected display name, got %q (err %v)", name, err)
	}
	raw, err := Convert[int32](v, m)
	if err != nil || raw != int32(pm.PresentModeComposedFlip) {
		t.Errorf("expected raw value %d, got %d (err %v)", pm.PresentModeComposedFlip, raw, err)
	}

	short, _ := EnumText(v, m, NameStyleShortName)
	if short != "Cmp Flip" {
		t.Errorf("expected short name, got %q", short)
	}
	fallback, _ := EnumText(EnumValue(pm.EnumPresentMode, int32(pm.PresentModeHardwareLegacyFlip)), m, NameStyleShortName)
	if fallback != "Hardware: Legacy Flip" {
		t.Errorf("expected fallback to display name, got %q", fallback)
	}

	sym, _ := EnumText(v, m, NameStyleSymbol)
	if sym != "PM_PRESENT_MODE_COMPOSED_FLIP" {
		t.Errorf("expected symbol, got %q", sym)
	}

	missing, err := Convert[string](EnumValue(pm.EnumPresentMode, 1234), m)
	if err != nil || missing != InvalidEnumName {
		t.Errorf("expected %q for unknown key, got %q (err %v)", InvalidEnumName, missing, err)
	}
	uninitialized, _ := Convert[string](v, enums.New())
	if uninitialized != InvalidEnumName {
		t.Errorf("expected %q before enum cache refresh, got %q", InvalidEnumName, uninitialized)
	}
}

func TestConvertMismatches(t *testing.T) {
	tests := []struct {
		name    string
		convert func() error
		target  error
	}{
		{"number as string", func() error { _, err := Convert[string](Float64(1), nil); return err }, ErrDatatypeMismatch},
		{"bool as string", func() error { _, err := Convert[string](Bool(true), nil); return err }, ErrDatatypeMismatch},
		{"string as number", func() error { _, err := Convert[float64](String("x"), nil); return err }, ErrDatatypeMismatch},
		{"string as bool", func() error { _, err := Convert[bool](String("x"), nil); return err }, ErrDatatypeMismatch},
		{"void as number", func() error { _, err := Convert[int](Void(), nil); return err }, ErrVoid},
		{"void as string", func() error { _, err := Convert[string](Void(), nil); return err }, ErrVoid},
		{"enum text of double", func() error { _, err := EnumText(Float64(1), nil, NameStyleName); return err }, ErrDatatypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.convert(); !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestDecodeNarrowString(t *testing.T) {
	buf := blob.NewBuffer(pm.StringCapacity)
	raw, _ := buf.Slice(0, pm.StringCapacity)
	copy(raw, []byte{'C', 'a', 'f', 0xE9, 0})

	v, err := Decode(buf, 0, pm.DataTypeString, pm.EnumNull)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	s, _ := Convert[string](v, nil)
	if s != "Café" {
		t.Errorf("expected Windows-1252 decode to %q, got %q", "Café", s)
	}
}
