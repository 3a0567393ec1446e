package pm

import "fmt"

// Enum identifies an introspectable enumeration.
type Enum int32

const (
	EnumStatus Enum = iota
	EnumMetric
	EnumMetricType
	EnumDeviceVendor
	EnumPresentMode
	EnumUnit
	EnumStat
	EnumDataType
	EnumGraphicsRuntime
	EnumDeviceType
	EnumMetricAvailability
	EnumNull
)

var enumSymbols = [...]string{
	"PM_ENUM_STATUS",
	"PM_ENUM_METRIC",
	"PM_ENUM_METRIC_TYPE",
	"PM_ENUM_DEVICE_VENDOR",
	"PM_ENUM_PRESENT_MODE",
	"PM_ENUM_UNIT",
	"PM_ENUM_STAT",
	"PM_ENUM_DATA_TYPE",
	"PM_ENUM_GRAPHICS_RUNTIME",
	"PM_ENUM_DEVICE_TYPE",
	"PM_ENUM_METRIC_AVAILABILITY",
	"PM_ENUM_NULL_ENUM",
}

func (e Enum) String() string {
	if e >= 0 && int(e) < len(enumSymbols) {
		return enumSymbols[e]
	}
	return fmt.Sprintf("PM_ENUM(%d)", int32(e))
}

// Stat selects the windowed statistic computed for a dynamic metric.
type Stat int32

const (
	StatNone Stat = iota
	StatAvg
	StatPercentile99
	StatPercentile95
	StatPercentile90
	StatPercentile01
	StatPercentile05
	StatPercentile10
	StatMax
	StatMin
	StatMidPoint
	StatMidLerp
	StatNewestPoint
	StatOldestPoint
	StatCount
	StatNonZeroAvg
)

var statSymbols = [...]string{
	"PM_STAT_NONE",
	"PM_STAT_AVG",
	"PM_STAT_PERCENTILE_99",
	"PM_STAT_PERCENTILE_95",
	"PM_STAT_PERCENTILE_90",
	"PM_STAT_PERCENTILE_01",
	"PM_STAT_PERCENTILE_05",
	"PM_STAT_PERCENTILE_10",
	"PM_STAT_MAX",
	"PM_STAT_MIN",
	"PM_STAT_MID_POINT",
	"PM_STAT_MID_LERP",
	"PM_STAT_NEWEST_POINT",
	"PM_STAT_OLDEST_POINT",
	"PM_STAT_COUNT",
	"PM_STAT_NON_ZERO_AVG",
}

func (s Stat) String() string {
	if s >= 0 && int(s) < len(statSymbols) {
		return statSymbols[s]
	}
	return fmt.Sprintf("PM_STAT(%d)", int32(s))
}

// Unit identifies a unit of measure.
type Unit int32

const (
	UnitDimensionless Unit = iota
	UnitRatio
	UnitBoolean
	UnitPercent
	UnitFPS
	UnitMicroseconds
	UnitMilliseconds
	UnitSeconds
	UnitMinutes
	UnitHours
	UnitMilliwatts
	UnitWatts
	UnitKilowatts
	UnitVerticalBlanks
	UnitMillivolts
	UnitVolts
	UnitHertz
	UnitKilohertz
	UnitMegahertz
	UnitGigahertz
	UnitCelsius
	UnitRPM
	UnitBitsPerSecond
	UnitKilobitsPerSecond
	UnitMegabitsPerSecond
	UnitGigabitsPerSecond
	UnitBytes
	UnitKilobytes
	UnitMegabytes
	UnitGigabytes
	UnitQPC
)

var unitSymbols = [...]string{
	"PM_UNIT_DIMENSIONLESS",
	"PM_UNIT_RATIO",
	"PM_UNIT_BOOLEAN",
	"PM_UNIT_PERCENT",
	"PM_UNIT_FPS",
	"PM_UNIT_MICROSECONDS",
	"PM_UNIT_MILLISECONDS",
	"PM_UNIT_SECONDS",
	"PM_UNIT_MINUTES",
	"PM_UNIT_HOURS",
	"PM_UNIT_MILLIWATTS",
	"PM_UNIT_WATTS",
	"PM_UNIT_KILOWATTS",
	"PM_UNIT_VERTICAL_BLANKS",
	"PM_UNIT_MILLIVOLTS",
	"PM_UNIT_VOLTS",
	"PM_UNIT_HERTZ",
	"PM_UNIT_KILOHERTZ",
	"PM_UNIT_MEGAHERTZ",
	"PM_UNIT_GIGAHERTZ",
	"PM_UNIT_CELSIUS",
	"PM_UNIT_RPM",
	"PM_UNIT_BITS_PER_SECOND",
	"PM_UNIT_KILOBITS_PER_SECOND",
	"PM_UNIT_MEGABITS_PER_SECOND",
	"PM_UNIT_GIGABITS_PER_SECOND",
	"PM_UNIT_BYTES",
	"PM_UNIT_KILOBYTES",
	"PM_UNIT_MEGABYTES",
	"PM_UNIT_GIGABYTES",
	"PM_UNIT_QPC",
}

func (u Unit) String() string {
	if u >= 0 && int(u) < len(unitSymbols) {
		return unitSymbols[u]
	}
	return fmt.Sprintf("PM_UNIT(%d)", int32(u))
}

// Status is the result code of a provider call.
type Status int32

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusBadArgument
	StatusBadHandle
	StatusSessionNotOpen
	StatusServiceError
	StatusInvalidEtlFile
	StatusInvalidPid
	StatusAlreadyTrackingProcess
	StatusUnableToCreateNsm
	StatusInvalidAdapterID
	StatusOutOfRange
	StatusInsufficientBuffer
	StatusPipeError
	StatusMiddlewareMissingPath
	StatusNonexistentFilePath
	StatusMiddlewareInvalidSignature
	StatusMiddlewareMissingEndpoint
	StatusMiddlewareVersionLow
	StatusMiddlewareVersionHigh
	StatusMiddlewareServiceMismatch
)

var statusSymbols = [...]string{
	"PM_STATUS_SUCCESS",
	"PM_STATUS_FAILURE",
	"PM_STATUS_BAD_ARGUMENT",
	"PM_STATUS_BAD_HANDLE",
	"PM_STATUS_SESSION_NOT_OPEN",
	"PM_STATUS_SERVICE_ERROR",
	"PM_STATUS_INVALID_ETL_FILE",
	"PM_STATUS_INVALID_PID",
	"PM_STATUS_ALREADY_TRACKING_PROCESS",
	"PM_STATUS_UNABLE_TO_CREATE_NSM",
	"PM_STATUS_INVALID_ADAPTER_ID",
	"PM_STATUS_OUT_OF_RANGE",
	"PM_STATUS_INSUFFICIENT_BUFFER",
	"PM_STATUS_PIPE_ERROR",
	"PM_STATUS_MIDDLEWARE_MISSING_PATH",
	"PM_STATUS_NONEXISTENT_FILE_PATH",
	"PM_STATUS_MIDDLEWARE_INVALID_SIGNATURE",
	"PM_STATUS_MIDDLEWARE_MISSING_ENDPOINT",
	"PM_STATUS_MIDDLEWARE_VERSION_LOW",
	"PM_STATUS_MIDDLEWARE_VERSION_HIGH",
	"PM_STATUS_MIDDLEWARE_SERVICE_MISMATCH",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusSymbols) {
		return statusSymbols[s]
	}
	return fmt.Sprintf("PM_STATUS(%d)", int32(s))
}

// DeviceType classifies a device in the introspection tree.
type DeviceType int32

const (
	DeviceTypeIndependent DeviceType = iota
	DeviceTypeGraphicsAdapter
)

func (d DeviceType) String() string {
	switch d {
	case DeviceTypeIndependent:
		return "PM_DEVICE_TYPE_INDEPENDENT"
	case DeviceTypeGraphicsAdapter:
		return "PM_DEVICE_TYPE_GRAPHICS_ADAPTER"
	default:
		return fmt.Sprintf("PM_DEVICE_TYPE(%d)", int32(d))
	}
}

type DeviceVendor int32

const (
	DeviceVendorIntel DeviceVendor = iota
	DeviceVendorNvidia
	DeviceVendorAMD
	DeviceVendorUnknown
)

var vendorSymbols = [...]string{
	"PM_DEVICE_VENDOR_INTEL",
	"PM_DEVICE_VENDOR_NVIDIA",
	"PM_DEVICE_VENDOR_AMD",
	"PM_DEVICE_VENDOR_UNKNOWN",
}

func (v DeviceVendor) String() string {
	if v >= 0 && int(v) < len(vendorSymbols) {
		return vendorSymbols[v]
	}
	return fmt.Sprintf("PM_DEVICE_VENDOR(%d)", int32(v))
}

type MetricAvailability int32

const (
	MetricAvailabilityAvailable MetricAvailability = iota
	MetricAvailabilityUnavailable
)

func (a MetricAvailability) String() string {
	switch a {
	case MetricAvailabilityAvailable:
		return "PM_METRIC_AVAILABILITY_AVAILABLE"
	case MetricAvailabilityUnavailable:
		return "PM_METRIC_AVAILABILITY_UNAVAILABLE"
	default:
		return fmt.Sprintf("PM_METRIC_AVAILABILITY(%d)", int32(a))
	}
}

type PresentMode int32

const (
	PresentModeHardwareLegacyFlip PresentMode = iota
	PresentModeHardwareLegacyCopyToFrontBuffer
	PresentModeHardwareIndependentFlip
	PresentModeComposedFlip
	PresentModeHardwareComposedIndependentFlip
	PresentModeComposedCopyWithGPUGDI
	PresentModeComposedCopyWithCPUGDI
	PresentModeUnknown
)

var presentModeSymbols = [...]string{
	"PM_PRESENT_MODE_HARDWARE_LEGACY_FLIP",
	"PM_PRESENT_MODE_HARDWARE_LEGACY_COPY_TO_FRONT_BUFFER",
	"PM_PRESENT_MODE_HARDWARE_INDEPENDENT_FLIP",
	"PM_PRESENT_MODE_COMPOSED_FLIP",
	"PM_PRESENT_MODE_HARDWARE_COMPOSED_INDEPENDENT_FLIP",
	"PM_PRESENT_MODE_COMPOSED_COPY_WITH_GPU_GDI",
	"PM_PRESENT_MODE_COMPOSED_COPY_WITH_CPU_GDI",
	"PM_PRESENT_MODE_UNKNOWN",
}

func (p PresentMode) String() string {
	if p >= 0 && int(p) < len(presentModeSymbols) {
		return presentModeSymbols[p]
	}
	return fmt.Sprintf("PM_PRESENT_MODE(%d)", int32(p))
}

type GraphicsRuntime int32

const (
	GraphicsRuntimeUnknown GraphicsRuntime = iota
	GraphicsRuntimeDXGI
	GraphicsRuntimeD3D9
)

func (g GraphicsRuntime) String() string {
	switch g {
	case GraphicsRuntimeUnknown:
		return "PM_GRAPHICS_RUNTIME_UNKNOWN"
	case GraphicsRuntimeDXGI:
		return "PM_GRAPHICS_RUNTIME_DXGI"
	case GraphicsRuntimeD3D9:
		return "PM_GRAPHICS_RUNTIME_D3D9"
	default:
		return fmt.Sprintf("PM_GRAPHICS_RUNTIME(%d)", int32(g))
	}
}
