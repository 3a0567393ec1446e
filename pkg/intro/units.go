package intro

import (
	"fmt"

	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// Unit is a unit of measure relative to its base unit.
type Unit struct {
	root *Root
	idx  int
}

func (u Unit) desc() *UnitDesc { return &u.root.tree.Units[u.idx] }

func (u Unit) ID() pm.Unit { return u.desc().ID }

func (u Unit) BaseUnit() pm.Unit { return u.desc().BaseUnit }

func (u Unit) Scale() float64 { return u.desc().Scale }

// Key resolves the unit's entry in the unit enum (name, short name).
func (u Unit) Key() (EnumKey, error) {
	return u.root.FindEnumKey(pm.EnumUnit, int32(u.ID()))
}

// BaseKey resolves the base unit's entry in the unit enum.
func (u Unit) BaseKey() (EnumKey, error) {
	return u.root.FindEnumKey(pm.EnumUnit, int32(u.BaseUnit()))
}

// ConversionFactor returns the multiplier that converts a value in u into
// dest. Both units must share a base unit.
func (u Unit) ConversionFactor(dest pm.Unit) (float64, error) {
	d, err := u.root.FindUnit(dest)
	if err != nil {
		return 0, err
	}
	if d.BaseUnit() != u.BaseUnit() {
		return 0, fmt.Errorf("%w: %s -> %s", ErrIncompatibleUnits, u.ID(), dest)
	}
	if d.Scale() == 0 {
		return 0, fmt.Errorf("unit %s has zero scale", dest)
	}
	return u.Scale() / d.Scale(), nil
}
