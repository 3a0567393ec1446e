package intro

import "github.com/xnaught/PresentMon-sub004/pkg/pm"

// Tree is the flat introspection payload delivered by a provider. It is
// consumed once by NewRoot and never referenced afterwards.
type Tree struct {
	Enums   []EnumDesc   `msgpack:"enums"`
	Devices []DeviceDesc `msgpack:"devices"`
	Units   []UnitDesc   `msgpack:"units"`
	Metrics []MetricDesc `msgpack:"metrics"`
}

type EnumDesc struct {
	ID          pm.Enum       `msgpack:"id"`
	Symbol      string        `msgpack:"symbol"`
	Description string        `msgpack:"description"`
	Keys        []EnumKeyDesc `msgpack:"keys"`
}

type EnumKeyDesc struct {
	Value       int32  `msgpack:"value"`
	Symbol      string `msgpack:"symbol"`
	Name        string `msgpack:"name"`
	ShortName   string `msgpack:"short_name"`
	Description string `msgpack:"description"`
}

type DeviceDesc struct {
	ID     uint32          `msgpack:"id"`
	Type   pm.DeviceType   `msgpack:"type"`
	Vendor pm.DeviceVendor `msgpack:"vendor"`
	Name   string          `msgpack:"name"`
}

// UnitDesc relates a unit to its base unit: value_in_base = value * Scale.
type UnitDesc struct {
	ID       pm.Unit `msgpack:"id"`
	BaseUnit pm.Unit `msgpack:"base_unit"`
	Scale    float64 `msgpack:"scale"`
}

type DataTypeInfo struct {
	PolledType pm.DataType `msgpack:"polled_type"`
	FrameType  pm.DataType `msgpack:"frame_type"`
	EnumID     pm.Enum     `msgpack:"enum_id"`
}

type DeviceMetricInfo struct {
	DeviceID     uint32                `msgpack:"device_id"`
	Availability pm.MetricAvailability `msgpack:"availability"`
	ArraySize    uint32                `msgpack:"array_size"`
}

// IsAvailable reports whether the device produces this metric at all.
func (d DeviceMetricInfo) IsAvailable() bool {
	return d.Availability == pm.MetricAvailabilityAvailable
}

type MetricDesc struct {
	ID            pm.Metric          `msgpack:"id"`
	Type          pm.MetricType      `msgpack:"type"`
	Unit          pm.Unit            `msgpack:"unit"`
	PreferredUnit pm.Unit            `msgpack:"preferred_unit"`
	TypeInfo      DataTypeInfo       `msgpack:"type_info"`
	DeviceInfo    []DeviceMetricInfo `msgpack:"device_info"`
	Stats         []pm.Stat          `msgpack:"stats"`
}

// clone returns a deep copy so the Root never aliases caller memory.
func (t *Tree) clone() *Tree {
	out := &Tree{
		Enums:   make([]EnumDesc, len(t.Enums)),
		Devices: append([]DeviceDesc(nil), t.Devices...),
		Units:   append([]UnitDesc(nil), t.Units...),
		Metrics: make([]MetricDesc, len(t.Metrics)),
	}
	for i, e := range t.Enums {
		e.Keys = append([]EnumKeyDesc(nil), e.Keys...)
		out.Enums[i] = e
	}
	for i, m := range t.Metrics {
		m.DeviceInfo = append([]DeviceMetricInfo(nil), m.DeviceInfo...)
		m.Stats = append([]pm.Stat(nil), m.Stats...)
		out.Metrics[i] = m
	}
	return out
}
