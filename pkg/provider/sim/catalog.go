package sim

import (
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// Device ids served by the simulator.
const (
	CPUDevice uint32 = pm.UniversalDevice
	GPUDevice uint32 = 1
)

// Static values reported by the simulator.
const (
	GPUName              = "Intel(R) Arc(TM) A770 Graphics"
	CPUName              = "Intel(R) Core(TM) i9-13900K"
	GPUSustainedPowerCap = 225.0
	CPUPowerLimitWatts   = 253.0
	GPUMemSizeBytes      = uint64(16) << 30
)

type metricDef struct {
	id        pm.Metric
	typ       pm.MetricType
	unit      pm.Unit
	preferred pm.Unit
	polled    pm.DataType
	frame     pm.DataType
	enum      pm.Enum
	device    uint32
	arraySize uint32
	available bool
}

var (
	timingStats  = []pm.Stat{pm.StatAvg, pm.StatPercentile99, pm.StatPercentile95, pm.StatPercentile90, pm.StatMax, pm.StatMin, pm.StatNewestPoint}
	telemStats   = []pm.Stat{pm.StatAvg, pm.StatMax, pm.StatMin, pm.StatNewestPoint}
	newestOnly   = []pm.Stat{pm.StatNewestPoint}
	staticStats  = []pm.Stat{pm.StatNone}
	frameOnly    = []pm.Stat{pm.StatNone}
	fractionStat = []pm.Stat{pm.StatAvg}
)

func double(id pm.Metric, t pm.MetricType, unit pm.Unit, device uint32) metricDef {
	frame := pm.DataTypeDouble
	if t == pm.MetricTypeDynamic {
		frame = pm.DataTypeVoid
	}
	return metricDef{id: id, typ: t, unit: unit, polled: pm.DataTypeDouble, frame: frame,
		enum: pm.EnumNull, device: device, arraySize: 1, available: true}
}

var metricDefs = []metricDef{
	{id: pm.MetricApplication, typ: pm.MetricTypeStatic, unit: pm.UnitDimensionless, polled: pm.DataTypeString, frame: pm.DataTypeString, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricSwapChainAddress, typ: pm.MetricTypeFrameEvent, unit: pm.UnitDimensionless, polled: pm.DataTypeVoid, frame: pm.DataTypeUint64, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricGPUVendor, typ: pm.MetricTypeStatic, unit: pm.UnitDimensionless, polled: pm.DataTypeEnum, frame: pm.DataTypeEnum, enum: pm.EnumDeviceVendor, device: GPUDevice, arraySize: 1, available: true},
	{id: pm.MetricGPUName, typ: pm.MetricTypeStatic, unit: pm.UnitDimensionless, polled: pm.DataTypeString, frame: pm.DataTypeString, enum: pm.EnumNull, device: GPUDevice, arraySize: 1, available: true},
	{id: pm.MetricCPUVendor, typ: pm.MetricTypeStatic, unit: pm.UnitDimensionless, polled: pm.DataTypeEnum, frame: pm.DataTypeEnum, enum: pm.EnumDeviceVendor, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricCPUName, typ: pm.MetricTypeStatic, unit: pm.UnitDimensionless, polled: pm.DataTypeString, frame: pm.DataTypeString, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricTime, typ: pm.MetricTypeFrameEvent, unit: pm.UnitSeconds, polled: pm.DataTypeVoid, frame: pm.DataTypeDouble, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricCPUFrameQPC, typ: pm.MetricTypeFrameEvent, unit: pm.UnitQPC, polled: pm.DataTypeVoid, frame: pm.DataTypeUint64, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	double(pm.MetricFrameTime, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	double(pm.MetricCPUBusy, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	double(pm.MetricCPUWait, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	double(pm.MetricDisplayedFPS, pm.MetricTypeDynamic, pm.UnitFPS, CPUDevice),
	double(pm.MetricPresentedFPS, pm.MetricTypeDynamic, pm.UnitFPS, CPUDevice),
	double(pm.MetricGPUTime, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	double(pm.MetricGPUBusy, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	double(pm.MetricGPUWait, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	{id: pm.MetricDroppedFrames, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitPercent, polled: pm.DataTypeDouble, frame: pm.DataTypeBool, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	double(pm.MetricDisplayedTime, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	{id: pm.MetricSyncInterval, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitVerticalBlanks, polled: pm.DataTypeInt32, frame: pm.DataTypeInt32, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricPresentFlags, typ: pm.MetricTypeFrameEvent, unit: pm.UnitDimensionless, polled: pm.DataTypeVoid, frame: pm.DataTypeUint32, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricPresentMode, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitDimensionless, polled: pm.DataTypeEnum, frame: pm.DataTypeEnum, enum: pm.EnumPresentMode, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricPresentRuntime, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitDimensionless, polled: pm.DataTypeEnum, frame: pm.DataTypeEnum, enum: pm.EnumGraphicsRuntime, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricAllowsTearing, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitBoolean, polled: pm.DataTypeBool, frame: pm.DataTypeBool, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	double(pm.MetricGPULatency, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	double(pm.MetricDisplayLatency, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	double(pm.MetricClickToPhotonLatency, pm.MetricTypeDynamicFrame, pm.UnitMilliseconds, CPUDevice),
	{id: pm.MetricGPUSustainedPowerLimit, typ: pm.MetricTypeStatic, unit: pm.UnitWatts, polled: pm.DataTypeDouble, frame: pm.DataTypeDouble, enum: pm.EnumNull, device: GPUDevice, arraySize: 1, available: true},
	double(pm.MetricGPUPower, pm.MetricTypeDynamicFrame, pm.UnitWatts, GPUDevice),
	double(pm.MetricGPUVoltage, pm.MetricTypeDynamicFrame, pm.UnitVolts, GPUDevice),
	{id: pm.MetricGPUFrequency, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitMegahertz, preferred: pm.UnitGigahertz, polled: pm.DataTypeDouble, frame: pm.DataTypeDouble, enum: pm.EnumNull, device: GPUDevice, arraySize: 1, available: true},
	double(pm.MetricGPUTemperature, pm.MetricTypeDynamicFrame, pm.UnitCelsius, GPUDevice),
	{id: pm.MetricGPUFanSpeed, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitRPM, polled: pm.DataTypeDouble, frame: pm.DataTypeDouble, enum: pm.EnumNull, device: GPUDevice, arraySize: 2, available: true},
	double(pm.MetricGPUUtilization, pm.MetricTypeDynamicFrame, pm.UnitPercent, GPUDevice),
	double(pm.MetricGPURenderComputeUtilization, pm.MetricTypeDynamicFrame, pm.UnitPercent, GPUDevice),
	double(pm.MetricGPUMediaUtilization, pm.MetricTypeDynamicFrame, pm.UnitPercent, GPUDevice),
	{id: pm.MetricGPUPowerLimited, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitPercent, polled: pm.DataTypeDouble, frame: pm.DataTypeBool, enum: pm.EnumNull, device: GPUDevice, arraySize: 1, available: true},
	{id: pm.MetricGPUTemperatureLimited, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitPercent, polled: pm.DataTypeDouble, frame: pm.DataTypeBool, enum: pm.EnumNull, device: GPUDevice, arraySize: 1, available: true},
	double(pm.MetricGPUMemPower, pm.MetricTypeDynamicFrame, pm.UnitWatts, GPUDevice),
	{id: pm.MetricGPUMemVoltage, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitVolts, polled: pm.DataTypeDouble, frame: pm.DataTypeDouble, enum: pm.EnumNull, device: GPUDevice, arraySize: 1, available: false},
	double(pm.MetricGPUMemFrequency, pm.MetricTypeDynamicFrame, pm.UnitMegahertz, GPUDevice),
	double(pm.MetricGPUMemTemperature, pm.MetricTypeDynamicFrame, pm.UnitCelsius, GPUDevice),
	{id: pm.MetricGPUMemSize, typ: pm.MetricTypeStatic, unit: pm.UnitBytes, preferred: pm.UnitGigabytes, polled: pm.DataTypeUint64, frame: pm.DataTypeUint64, enum: pm.EnumNull, device: GPUDevice, arraySize: 1, available: true},
	{id: pm.MetricGPUMemUsed, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitBytes, preferred: pm.UnitGigabytes, polled: pm.DataTypeUint64, frame: pm.DataTypeUint64, enum: pm.EnumNull, device: GPUDevice, arraySize: 1, available: true},
	double(pm.MetricGPUMemUtilization, pm.MetricTypeDynamicFrame, pm.UnitPercent, GPUDevice),
	double(pm.MetricCPUUtilization, pm.MetricTypeDynamicFrame, pm.UnitPercent, CPUDevice),
	{id: pm.MetricCPUPowerLimit, typ: pm.MetricTypeStatic, unit: pm.UnitWatts, polled: pm.DataTypeDouble, frame: pm.DataTypeDouble, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	double(pm.MetricCPUPower, pm.MetricTypeDynamicFrame, pm.UnitWatts, CPUDevice),
	double(pm.MetricCPUTemperature, pm.MetricTypeDynamicFrame, pm.UnitCelsius, CPUDevice),
	{id: pm.MetricCPUFrequency, typ: pm.MetricTypeDynamicFrame, unit: pm.UnitMegahertz, preferred: pm.UnitGigahertz, polled: pm.DataTypeDouble, frame: pm.DataTypeDouble, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: true},
	{id: pm.MetricCPUCoreUtility, typ: pm.MetricTypeDynamic, unit: pm.UnitPercent, polled: pm.DataTypeDouble, frame: pm.DataTypeVoid, enum: pm.EnumNull, device: CPUDevice, arraySize: 1, available: false},
}

type unitDef struct {
	id    pm.Unit
	base  pm.Unit
	scale float64
}

var unitDefs = []unitDef{
	{pm.UnitDimensionless, pm.UnitDimensionless, 1},
	{pm.UnitRatio, pm.UnitRatio, 1},
	{pm.UnitBoolean, pm.UnitBoolean, 1},
	{pm.UnitPercent, pm.UnitRatio, 0.01},
	{pm.UnitFPS, pm.UnitFPS, 1},
	{pm.UnitMicroseconds, pm.UnitSeconds, 1e-6},
	{pm.UnitMilliseconds, pm.UnitSeconds, 1e-3},
	{pm.UnitSeconds, pm.UnitSeconds, 1},
	{pm.UnitMinutes, pm.UnitSeconds, 60},
	{pm.UnitHours, pm.UnitSeconds, 3600},
	{pm.UnitMilliwatts, pm.UnitWatts, 1e-3},
	{pm.UnitWatts, pm.UnitWatts, 1},
	{pm.UnitKilowatts, pm.UnitWatts, 1e3},
	{pm.UnitVerticalBlanks, pm.UnitVerticalBlanks, 1},
	{pm.UnitMillivolts, pm.UnitVolts, 1e-3},
	{pm.UnitVolts, pm.UnitVolts, 1},
	{pm.UnitHertz, pm.UnitHertz, 1},
	{pm.UnitKilohertz, pm.UnitHertz, 1e3},
	{pm.UnitMegahertz, pm.UnitHertz, 1e6},
	{pm.UnitGigahertz, pm.UnitHertz, 1e9},
	{pm.UnitCelsius, pm.UnitCelsius, 1},
	{pm.UnitRPM, pm.UnitRPM, 1},
	{pm.UnitBitsPerSecond, pm.UnitBitsPerSecond, 1},
	{pm.UnitKilobitsPerSecond, pm.UnitBitsPerSecond, 1e3},
	{pm.UnitMegabitsPerSecond, pm.UnitBitsPerSecond, 1e6},
	{pm.UnitGigabitsPerSecond, pm.UnitBitsPerSecond, 1e9},
	{pm.UnitBytes, pm.UnitBytes, 1},
	{pm.UnitKilobytes, pm.UnitBytes, 1e3},
	{pm.UnitMegabytes, pm.UnitBytes, 1e6},
	{pm.UnitGigabytes, pm.UnitBytes, 1e9},
	{pm.UnitQPC, pm.UnitQPC, 1},
}

func statsFor(d metricDef) []pm.Stat {
	switch {
	case d.typ == pm.MetricTypeStatic:
		return staticStats
	case d.typ == pm.MetricTypeFrameEvent:
		return frameOnly
	case d.polled == pm.DataTypeEnum || d.polled == pm.DataTypeBool || d.polled == pm.DataTypeInt32:
		return newestOnly
	case d.polled == pm.DataTypeDouble && d.frame == pm.DataTypeBool:
		return fractionStat
	case d.unit == pm.UnitMilliseconds:
		return timingStats
	default:
		return telemStats
	}
}

func enumDesc(id pm.Enum, symbol, description string, keys []keyDef) intro.EnumDesc {
	e := intro.EnumDesc{ID: id, Symbol: symbol, Description: description, Keys: make([]intro.EnumKeyDesc, len(keys))}
	for i, k := range keys {
		e.Keys[i] = intro.EnumKeyDesc{
			Value:       k.value,
			Symbol:      k.symbol,
			Name:        k.name,
			ShortName:   k.shortName,
			Description: k.description,
		}
	}
	return e
}

// Catalog returns the introspection tree of the simulator: one
// device-independent CPU device and one Intel graphics adapter.
func Catalog() *intro.Tree {
	t := &intro.Tree{
		Enums: []intro.EnumDesc{
			enumDesc(pm.EnumStatus, "PM_STATUS", "Status codes returned by API calls", statusKeys),
			enumDesc(pm.EnumMetric, "PM_METRIC", "Available metrics", metricKeys),
			enumDesc(pm.EnumMetricType, "PM_METRIC_TYPE", "How a metric may be queried", metricTypeKeys),
			enumDesc(pm.EnumDeviceVendor, "PM_DEVICE_VENDOR", "Device vendors", deviceVendorKeys),
			enumDesc(pm.EnumPresentMode, "PM_PRESENT_MODE", "Presentation modes", presentModeKeys),
			enumDesc(pm.EnumUnit, "PM_UNIT", "Units of measure", unitKeys),
			enumDesc(pm.EnumStat, "PM_STAT", "Statistics computed over a window", statKeys),
			enumDesc(pm.EnumDataType, "PM_DATA_TYPE", "Blob field data types", dataTypeKeys),
			enumDesc(pm.EnumGraphicsRuntime, "PM_GRAPHICS_RUNTIME", "Graphics runtimes", graphicsRuntimeKeys),
			enumDesc(pm.EnumDeviceType, "PM_DEVICE_TYPE", "Device types", deviceTypeKeys),
			enumDesc(pm.EnumMetricAvailability, "PM_METRIC_AVAILABILITY", "Metric availability", availabilityKeys),
		},
		Devices: []intro.DeviceDesc{
			{ID: CPUDevice, Type: pm.DeviceTypeIndependent, Vendor: pm.DeviceVendorIntel, Name: CPUName},
			{ID: GPUDevice, Type: pm.DeviceTypeGraphicsAdapter, Vendor: pm.DeviceVendorIntel, Name: GPUName},
		},
	}
	for _, u := range unitDefs {
		t.Units = append(t.Units, intro.UnitDesc{ID: u.id, BaseUnit: u.base, Scale: u.scale})
	}
	for _, d := range metricDefs {
		avail := pm.MetricAvailabilityAvailable
		if !d.available {
			avail = pm.MetricAvailabilityUnavailable
		}
		preferred := d.preferred
		if preferred == pm.UnitDimensionless {
			preferred = d.unit
		}
		t.Metrics = append(t.Metrics, intro.MetricDesc{
			ID:            d.id,
			Type:          d.typ,
			Unit:          d.unit,
			PreferredUnit: preferred,
			TypeInfo:      intro.DataTypeInfo{PolledType: d.polled, FrameType: d.frame, EnumID: d.enum},
			DeviceInfo: []intro.DeviceMetricInfo{
				{DeviceID: d.device, Availability: avail, ArraySize: d.arraySize},
			},
			Stats: append([]pm.Stat(nil), statsFor(d)...),
		})
	}
	return t
}
