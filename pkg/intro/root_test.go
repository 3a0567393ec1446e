package intro

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

func testTree() *Tree {
	return &Tree{
		Enums: []EnumDesc{
			{
				ID:     pm.EnumMetric,
				Symbol: "PM_METRIC",
				Keys: []EnumKeyDesc{
					{Value: int32(pm.MetricGPUPower), Symbol: "PM_METRIC_GPU_POWER", Name: "GPU Power"},
				},
			},
			{
				ID:     pm.EnumUnit,
				Symbol: "PM_UNIT",
				Keys: []EnumKeyDesc{
					{Value: int32(pm.UnitWatts), Symbol: "PM_UNIT_WATTS", Name: "Watts", ShortName: "W"},
					{Value: int32(pm.UnitMilliwatts), Symbol: "PM_UNIT_MILLIWATTS", Name: "Milliwatts", ShortName: "mW"},
				},
			},
			{
				ID:     pm.EnumDeviceType,
				Symbol: "PM_DEVICE_TYPE",
				Keys: []EnumKeyDesc{
					{Value: int32(pm.DeviceTypeGraphicsAdapter), Symbol: "PM_DEVICE_TYPE_GRAPHICS_ADAPTER", Name: "Graphics Adapter"},
				},
			},
		},
		Devices: []DeviceDesc{
			{ID: 0, Type: pm.DeviceTypeIndependent, Name: "Device-independent"},
			{ID: 1, Type: pm.DeviceTypeGraphicsAdapter, Vendor: pm.DeviceVendorIntel, Name: "Arc A770"},
		},
		Units: []UnitDesc{
			{ID: pm.UnitWatts, BaseUnit: pm.UnitWatts, Scale: 1},
			{ID: pm.UnitMilliwatts, BaseUnit: pm.UnitWatts, Scale: 0.001},
			{ID: pm.UnitCelsius, BaseUnit: pm.UnitCelsius, Scale: 1},
		},
		Metrics: []MetricDesc{
			{
				ID:       pm.MetricGPUPower,
				Type:     pm.MetricTypeDynamicFrame,
				Unit:     pm.UnitWatts,
				TypeInfo: DataTypeInfo{PolledType: pm.DataTypeDouble, FrameType: pm.DataTypeDouble, EnumID: pm.EnumNull},
				DeviceInfo: []DeviceMetricInfo{
					{DeviceID: 1, Availability: pm.MetricAvailabilityAvailable, ArraySize: 1},
				},
				Stats: []pm.Stat{pm.StatAvg, pm.StatMax},
			},
			{
				ID:       pm.MetricGPUFanSpeed,
				Type:     pm.MetricTypeDynamicFrame,
				Unit:     pm.UnitRPM,
				TypeInfo: DataTypeInfo{PolledType: pm.DataTypeDouble, FrameType: pm.DataTypeDouble, EnumID: pm.EnumNull},
				DeviceInfo: []DeviceMetricInfo{
					{DeviceID: 1, Availability: pm.MetricAvailabilityAvailable, ArraySize: 2},
				},
			},
			{
				ID:       pm.MetricCPUCoreUtility,
				Type:     pm.MetricTypeDynamic,
				Unit:     pm.UnitPercent,
				TypeInfo: DataTypeInfo{PolledType: pm.DataTypeDouble, FrameType: pm.DataTypeVoid, EnumID: pm.EnumNull},
				DeviceInfo: []DeviceMetricInfo{
					{DeviceID: 0, Availability: pm.MetricAvailabilityUnavailable, ArraySize: 1},
				},
			},
		},
	}
}

func TestLookups(t *testing.T) {
	root := NewRoot(testTree())

	m, err := root.FindMetric(pm.MetricGPUPower)
	if err != nil {
		t.Fatalf("FindMetric failed: %v", err)
	}
	if m.ID() != pm.MetricGPUPower || m.Unit() != pm.UnitWatts {
		t.Errorf("unexpected metric view: %s %s", m.ID(), m.Unit())
	}
	if m.Name() != "GPU Power" {
		t.Errorf("expected metric name from enum key, got %q", m.Name())
	}

	d, err := root.FindDevice(1)
	if err != nil {
		t.Fatalf("FindDevice failed: %v", err)
	}
	if d.Name() != "Arc A770" || d.Vendor() != pm.DeviceVendorIntel {
		t.Errorf("unexpected device view: %s %s", d.Name(), d.Vendor())
	}
	key, err := d.TypeKey()
	if err != nil || key.Name() != "Graphics Adapter" {
		t.Errorf("expected device type key, got %q (err %v)", key.Name(), err)
	}

	k, err := root.FindEnumKey(pm.EnumUnit, int32(pm.UnitWatts))
	if err != nil {
		t.Fatalf("FindEnumKey failed: %v", err)
	}
	if k.ShortName() != "W" || k.Enum().ID() != pm.EnumUnit {
		t.Errorf("unexpected key: %q in %s", k.ShortName(), k.Enum().ID())
	}
}

func TestLookupErrors(t *testing.T) {
	root := NewRoot(testTree())

	tests := []struct {
		name string
		find func() error
		msg  string
	}{
		{"enum key", func() error { _, err := root.FindEnumKey(pm.EnumUnit, 999); return err }, "unable to find key value=999 for enum ID=5"},
		{"enum", func() error { _, err := root.FindEnum(pm.EnumStat); return err }, "unable to find enum ID=6"},
		{"device", func() error { _, err := root.FindDevice(7); return err }, "unable to find device ID=7"},
		{"metric", func() error { _, err := root.FindMetric(pm.MetricCPUPower); return err }, "unable to find metric ID=" + strconv.Itoa(int(pm.MetricCPUPower))},
		{"unit", func() error { _, err := root.FindUnit(pm.UnitHertz); return err }, "unable to find unit ID=" + strconv.Itoa(int(pm.UnitHertz))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.find()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, err.Error())
			}
			if !errors.Is(err, ErrLookup) {
				t.Error("expected errors.Is(err, ErrLookup)")
			}
			var le *LookupError
			if !errors.As(err, &le) {
				t.Error("expected *LookupError")
			}
		})
	}
}

func TestAvailability(t *testing.T) {
	root := NewRoot(testTree())

	tests := []struct {
		name   string
		metric pm.Metric
		device uint32
		index  uint32
		want   bool
	}{
		{"available on adapter", pm.MetricGPUPower, 1, 0, true},
		{"no record for device", pm.MetricGPUPower, 0, 0, false},
		{"second fan", pm.MetricGPUFanSpeed, 1, 1, true},
		{"index past array size", pm.MetricGPUFanSpeed, 1, 2, false},
		{"marked unavailable", pm.MetricCPUCoreUtility, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := root.FindMetric(tt.metric)
			if err != nil {
				t.Fatalf("FindMetric failed: %v", err)
			}
			if got := m.IsAvailable(tt.device, tt.index); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	m, _ := root.FindMetric(pm.MetricGPUPower)
	if !m.SupportsStat(pm.StatMax) || m.SupportsStat(pm.StatMin) {
		t.Error("unexpected stat support")
	}
}

func TestUnitConversion(t *testing.T) {
	root := NewRoot(testTree())

	mw, err := root.FindUnit(pm.UnitMilliwatts)
	if err != nil {
		t.Fatalf("FindUnit failed: %v", err)
	}
	f, err := mw.ConversionFactor(pm.UnitWatts)
	if err != nil {
		t.Fatalf("ConversionFactor failed: %v", err)
	}
	if math.Abs(f-0.001) > 1e-12 {
		t.Errorf("expected 0.001, got %v", f)
	}

	w, _ := root.FindUnit(pm.UnitWatts)
	f, err = w.ConversionFactor(pm.UnitMilliwatts)
	if err != nil || math.Abs(f-1000) > 1e-9 {
		t.Errorf("expected 1000, got %v (err %v)", f, err)
	}

	if _, err := w.ConversionFactor(pm.UnitCelsius); !errors.Is(err, ErrIncompatibleUnits) {
		t.Errorf("expected ErrIncompatibleUnits, got %v", err)
	}
	if _, err := w.ConversionFactor(pm.UnitHertz); !errors.Is(err, ErrLookup) {
		t.Errorf("expected lookup error for unknown unit, got %v", err)
	}
}

func TestRootIsolatedFromInput(t *testing.T) {
	tree := testTree()
	root := NewRoot(tree)

	tree.Devices[1].Name = "changed"
	tree.Metrics[0].DeviceInfo[0].ArraySize = 0

	d, _ := root.FindDevice(1)
	if d.Name() != "Arc A770" {
		t.Errorf("root observed input mutation: %q", d.Name())
	}
	m, _ := root.FindMetric(pm.MetricGPUPower)
	if !m.IsAvailable(1, 0) {
		t.Error("root observed input mutation of device info")
	}

	out := root.Tree()
	out.Devices[1].Name = "also changed"
	if d.Name() != "Arc A770" {
		t.Error("root observed mutation of Tree() copy")
	}
}

func TestOrderedIteration(t *testing.T) {
	root := NewRoot(testTree())

	metrics := root.Metrics()
	want := []pm.Metric{pm.MetricGPUPower, pm.MetricGPUFanSpeed, pm.MetricCPUCoreUtility}
	if len(metrics) != len(want) {
		t.Fatalf("expected %d metrics, got %d", len(want), len(metrics))
	}
	for i, m := range metrics {
		if m.ID() != want[i] {
			t.Errorf("metric %d: expected %s, got %s", i, want[i], m.ID())
		}
	}
	if len(root.Devices()) != 2 || len(root.Units()) != 3 || len(root.Enums()) != 3 {
		t.Error("unexpected table sizes")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	data, err := Encode(testTree())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	tree, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	root := NewRoot(tree)
	m, err := root.FindMetric(pm.MetricGPUFanSpeed)
	if err != nil {
		t.Fatalf("FindMetric after decode failed: %v", err)
	}
	if !m.IsAvailable(1, 1) {
		t.Error("expected decoded availability to survive")
	}
	k, err := root.FindEnumKey(pm.EnumUnit, int32(pm.UnitMilliwatts))
	if err != nil || k.ShortName() != "mW" {
		t.Errorf("expected decoded enum key, got %q (err %v)", k.ShortName(), err)
	}

	if _, err := Decode([]byte{0xc1}); err == nil {
		t.Error("expected error decoding garbage")
	}
}
