// Package intro indexes the provider's introspection tree: the metrics,
// enums, devices and units it can serve.
//
// A Root is immutable once built. Views returned from it (Metric, Enum,
// Device, Unit, EnumKey) are small index handles into storage owned by the
// Root, so they stay valid for as long as the caller holds the Root.
package intro

import "github.com/xnaught/PresentMon-sub004/pkg/pm"

// Root is the indexed, read-only form of a Tree.
type Root struct {
	tree *Tree

	enumKeys map[uint64]keyRef
	enums    map[pm.Enum]int
	devices  map[uint32]int
	metrics  map[pm.Metric]int
	units    map[pm.Unit]int
}

type keyRef struct {
	enum int
	key  int
}

// NewRoot builds the lookup tables for tree. The tree is copied; later
// changes to it are not observed by the Root.
func NewRoot(tree *Tree) *Root {
	if tree == nil {
		tree = &Tree{}
	}
	t := tree.clone()
	r := &Root{
		tree:     t,
		enumKeys: make(map[uint64]keyRef),
		enums:    make(map[pm.Enum]int, len(t.Enums)),
		devices:  make(map[uint32]int, len(t.Devices)),
		metrics:  make(map[pm.Metric]int, len(t.Metrics)),
		units:    make(map[pm.Unit]int, len(t.Units)),
	}
	for ei, e := range t.Enums {
		for ki, k := range e.Keys {
			r.enumKeys[enumKeyHash(e.ID, k.Value)] = keyRef{enum: ei, key: ki}
		}
		r.enums[e.ID] = ei
	}
	for i, d := range t.Devices {
		r.devices[d.ID] = i
	}
	for i, m := range t.Metrics {
		r.metrics[m.ID] = i
	}
	for i, u := range t.Units {
		r.units[u.ID] = i
	}
	return r
}

// enumKeyHash packs the enum id and key value into the upper and lower
// halves of a 64-bit key.
func enumKeyHash(enum pm.Enum, value int32) uint64 {
	return uint64(uint32(enum))<<32 | uint64(uint32(value))
}

func (r *Root) FindEnumKey(enum pm.Enum, value int32) (EnumKey, error) {
	ref, ok := r.enumKeys[enumKeyHash(enum, value)]
	if !ok {
		return EnumKey{}, &LookupError{Kind: LookupEnumKey, ID: int64(value), EnumID: enum}
	}
	return EnumKey{root: r, enum: ref.enum, key: ref.key}, nil
}

func (r *Root) FindEnum(id pm.Enum) (Enum, error) {
	i, ok := r.enums[id]
	if !ok {
		return Enum{}, &LookupError{Kind: LookupEnum, ID: int64(id)}
	}
	return Enum{root: r, idx: i}, nil
}

func (r *Root) FindDevice(id uint32) (Device, error) {
	i, ok := r.devices[id]
	if !ok {
		return Device{}, &LookupError{Kind: LookupDevice, ID: int64(id)}
	}
	return Device{root: r, idx: i}, nil
}

func (r *Root) FindMetric(id pm.Metric) (Metric, error) {
	i, ok := r.metrics[id]
	if !ok {
		return Metric{}, &LookupError{Kind: LookupMetric, ID: int64(id)}
	}
	return Metric{root: r, idx: i}, nil
}

func (r *Root) FindUnit(id pm.Unit) (Unit, error) {
	i, ok := r.units[id]
	if !ok {
		return Unit{}, &LookupError{Kind: LookupUnit, ID: int64(id)}
	}
	return Unit{root: r, idx: i}, nil
}

// Enums returns every enum in tree order.
func (r *Root) Enums() []Enum {
	out := make([]Enum, len(r.tree.Enums))
	for i := range out {
		out[i] = Enum{root: r, idx: i}
	}
	return out
}

// Metrics returns every metric in tree order.
func (r *Root) Metrics() []Metric {
	out := make([]Metric, len(r.tree.Metrics))
	for i := range out {
		out[i] = Metric{root: r, idx: i}
	}
	return out
}

// Devices returns every device in tree order.
func (r *Root) Devices() []Device {
	out := make([]Device, len(r.tree.Devices))
	for i := range out {
		out[i] = Device{root: r, idx: i}
	}
	return out
}

// Units returns every unit in tree order.
func (r *Root) Units() []Unit {
	out := make([]Unit, len(r.tree.Units))
	for i := range out {
		out[i] = Unit{root: r, idx: i}
	}
	return out
}

// Tree returns a deep copy of the indexed tree.
func (r *Root) Tree() *Tree {
	return r.tree.clone()
}
