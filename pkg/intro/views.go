package intro

import "github.com/xnaught/PresentMon-sub004/pkg/pm"

// EnumKey is one named value of an enum.
type EnumKey struct {
	root *Root
	enum int
	key  int
}

func (k EnumKey) desc() *EnumKeyDesc { return &k.root.tree.Enums[k.enum].Keys[k.key] }

func (k EnumKey) Value() int32 { return k.desc().Value }

func (k EnumKey) Symbol() string { return k.desc().Symbol }

func (k EnumKey) Name() string { return k.desc().Name }

func (k EnumKey) ShortName() string { return k.desc().ShortName }

func (k EnumKey) Description() string { return k.desc().Description }

// Enum returns the enum the key belongs to.
func (k EnumKey) Enum() Enum { return Enum{root: k.root, idx: k.enum} }

// Enum is an enumeration and its keys.
type Enum struct {
	root *Root
	idx  int
}

func (e Enum) desc() *EnumDesc { return &e.root.tree.Enums[e.idx] }

func (e Enum) ID() pm.Enum { return e.desc().ID }

func (e Enum) Symbol() string { return e.desc().Symbol }

func (e Enum) Description() string { return e.desc().Description }

// Keys returns the enum's keys in declaration order.
func (e Enum) Keys() []EnumKey {
	keys := make([]EnumKey, len(e.desc().Keys))
	for i := range keys {
		keys[i] = EnumKey{root: e.root, enum: e.idx, key: i}
	}
	return keys
}

// Device is a telemetry source such as a graphics adapter.
type Device struct {
	root *Root
	idx  int
}

func (d Device) desc() *DeviceDesc { return &d.root.tree.Devices[d.idx] }

func (d Device) ID() uint32 { return d.desc().ID }

func (d Device) Name() string { return d.desc().Name }

func (d Device) Type() pm.DeviceType { return d.desc().Type }

func (d Device) Vendor() pm.DeviceVendor { return d.desc().Vendor }

// TypeKey resolves the device type through the device-type enum.
func (d Device) TypeKey() (EnumKey, error) {
	return d.root.FindEnumKey(pm.EnumDeviceType, int32(d.Type()))
}

// VendorKey resolves the vendor through the vendor enum.
func (d Device) VendorKey() (EnumKey, error) {
	return d.root.FindEnumKey(pm.EnumDeviceVendor, int32(d.Vendor()))
}

// Metric describes one queryable metric.
type Metric struct {
	root *Root
	idx  int
}

func (m Metric) desc() *MetricDesc { return &m.root.tree.Metrics[m.idx] }

func (m Metric) ID() pm.Metric { return m.desc().ID }

func (m Metric) Type() pm.MetricType { return m.desc().Type }

func (m Metric) Unit() pm.Unit { return m.desc().Unit }

// PreferredUnitHint is the unit a UI should display the metric in.
func (m Metric) PreferredUnitHint() pm.Unit { return m.desc().PreferredUnit }

func (m Metric) DataTypeInfo() DataTypeInfo { return m.desc().TypeInfo }

func (m Metric) Stats() []pm.Stat { return append([]pm.Stat(nil), m.desc().Stats...) }

func (m Metric) DeviceInfo() []DeviceMetricInfo {
	return append([]DeviceMetricInfo(nil), m.desc().DeviceInfo...)
}

// Key resolves the metric's own entry in the metric enum, which carries its
// display name and description.
func (m Metric) Key() (EnumKey, error) {
	return m.root.FindEnumKey(pm.EnumMetric, int32(m.ID()))
}

// Name returns the display name of the metric, or its symbol if the metric
// enum has no entry for it.
func (m Metric) Name() string {
	if k, err := m.Key(); err == nil {
		return k.Name()
	}
	return m.ID().String()
}

// UnitInfo resolves the metric's native unit.
func (m Metric) UnitInfo() (Unit, error) {
	return m.root.FindUnit(m.Unit())
}

// DeviceMetricInfo returns the availability record for deviceID.
func (m Metric) DeviceMetricInfo(deviceID uint32) (DeviceMetricInfo, bool) {
	for _, dmi := range m.desc().DeviceInfo {
		if dmi.DeviceID == deviceID {
			return dmi, true
		}
	}
	return DeviceMetricInfo{}, false
}

// IsAvailable reports whether the metric produces data for the given
// device and array index.
func (m Metric) IsAvailable(deviceID, arrayIndex uint32) bool {
	dmi, ok := m.DeviceMetricInfo(deviceID)
	return ok && dmi.IsAvailable() && arrayIndex < dmi.ArraySize
}

// SupportsStat reports whether stat is listed for the metric.
func (m Metric) SupportsStat(stat pm.Stat) bool {
	for _, s := range m.desc().Stats {
		if s == stat {
			return true
		}
	}
	return false
}
