package access

import (
	"fmt"

	"github.com/xnaught/PresentMon-sub004/pkg/bridge"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/query"
)

// Element is one field of a container's blobs. Elements are created by
// Add and become readable once their container is finalized.
type Element struct {
	owner  *Container
	metric pm.Metric
	stat   pm.Stat
	slot   uint32
	index  uint32

	resolved query.Element
}

func (el *Element) Metric() pm.Metric { return el.metric }

func (el *Element) Stat() pm.Stat { return el.stat }

func (el *Element) ArrayIndex() uint32 { return el.index }

// DeviceID is the device the element resolved to at Finalize.
func (el *Element) DeviceID() uint32 { return el.resolved.DeviceID }

func (el *Element) IsAvailable() bool { return el.owner.Finalized() && el.resolved.Available }

func (el *Element) DataType() pm.DataType { return el.resolved.DataType }

func (el *Element) Offset() uint64 { return el.resolved.Offset }

// Value decodes the element from the active blob.
func (el *Element) Value() (bridge.Value, error) {
	if !el.owner.Finalized() {
		return bridge.Value{}, ErrNotFinalized
	}
	if !el.resolved.Available {
		return bridge.Value{}, fmt.Errorf("%w: %s on device %d", ErrUnavailable, el.metric, el.resolved.DeviceID)
	}
	b, err := el.owner.ActiveBlob()
	if err != nil {
		return bridge.Value{}, err
	}
	return bridge.Decode(b, el.resolved.Offset, el.resolved.DataType, el.resolved.EnumID)
}

// Convert reads a numeric element scaled from the metric's unit into unit.
func (el *Element) Convert(unit pm.Unit) (float64, error) {
	v, err := As[float64](el)
	if err != nil {
		return 0, err
	}
	m, err := el.owner.root.FindMetric(el.metric)
	if err != nil {
		return 0, err
	}
	from, err := m.UnitInfo()
	if err != nil {
		return 0, err
	}
	factor, err := from.ConversionFactor(unit)
	if err != nil {
		return 0, err
	}
	return v * factor, nil
}

// As reads el from the active blob as T. Enum elements read as string
// yield their display name.
func As[T bridge.Target](el *Element) (T, error) {
	var zero T
	v, err := el.Value()
	if err != nil {
		return zero, err
	}
	return bridge.Convert[T](v, el.owner.session.Enums())
}

// Lookup is As for optional elements: ok is false when el is unavailable
// or cannot be read as T.
func Lookup[T bridge.Target](el *Element) (T, bool) {
	v, err := As[T](el)
	return v, err == nil
}

// MustAs is As for elements the caller knows are readable. It panics on
// any error.
func MustAs[T bridge.Target](el *Element) T {
	v, err := As[T](el)
	if err != nil {
		panic(fmt.Sprintf("access: reading %s: %v", el.metric, err))
	}
	return v
}
