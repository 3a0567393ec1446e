package intro

import (
	"errors"
	"fmt"

	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// ErrLookup matches every *LookupError via errors.Is.
var ErrLookup = errors.New("introspection lookup failed")

// ErrIncompatibleUnits is returned when converting between units that do
// not share a base unit.
var ErrIncompatibleUnits = errors.New("cannot convert incompatible units")

// LookupKind names the table a failed lookup was made against.
type LookupKind int

const (
	LookupEnumKey LookupKind = iota
	LookupEnum
	LookupDevice
	LookupMetric
	LookupUnit
)

// LookupError reports an id that is not present in the introspection tree.
type LookupError struct {
	Kind   LookupKind
	ID     int64
	EnumID pm.Enum // only meaningful for LookupEnumKey
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case LookupEnumKey:
		return fmt.Sprintf("unable to find key value=%d for enum ID=%d", e.ID, int32(e.EnumID))
	case LookupEnum:
		return fmt.Sprintf("unable to find enum ID=%d", e.ID)
	case LookupDevice:
		return fmt.Sprintf("unable to find device ID=%d", e.ID)
	case LookupMetric:
		return fmt.Sprintf("unable to find metric ID=%d", e.ID)
	case LookupUnit:
		return fmt.Sprintf("unable to find unit ID=%d", e.ID)
	default:
		return fmt.Sprintf("unable to find ID=%d", e.ID)
	}
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
