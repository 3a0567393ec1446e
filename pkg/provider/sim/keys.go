package sim

import "github.com/xnaught/PresentMon-sub004/pkg/pm"

type keyDef struct {
	value       int32
	symbol      string
	name        string
	shortName   string
	description string
}

var metricKeys = []keyDef{
	{int32(pm.MetricApplication), "PM_METRIC_APPLICATION", "Application", "", "Name of the executable of the process being targeted"},
	{int32(pm.MetricSwapChainAddress), "PM_METRIC_SWAP_CHAIN_ADDRESS", "Swap Chain Address", "", "Address of the swap chain used to present, useful as a unique identifier"},
	{int32(pm.MetricGPUVendor), "PM_METRIC_GPU_VENDOR", "GPU Vendor", "", "Vendor name of the GPU"},
	{int32(pm.MetricGPUName), "PM_METRIC_GPU_NAME", "GPU Name", "", "Device name of the GPU"},
	{int32(pm.MetricCPUVendor), "PM_METRIC_CPU_VENDOR", "CPU Vendor", "", "Vendor name of the CPU"},
	{int32(pm.MetricCPUName), "PM_METRIC_CPU_NAME", "CPU Name", "", "Device name of the CPU"},
	{int32(pm.MetricTime), "PM_METRIC_TIME", "Time", "", "Time elapsed since the start of ETW event tracing"},
	{int32(pm.MetricCPUFrameQPC), "PM_METRIC_CPU_FRAME_QPC", "CPU Frame QPC", "", "The QueryPerformanceCounter timestamp when the CPU started working on the frame"},
	{int32(pm.MetricFrameTime), "PM_METRIC_FRAME_TIME", "Frame Time", "", "The total amount of time in between frames on the CPU"},
	{int32(pm.MetricCPUBusy), "PM_METRIC_CPU_BUSY", "CPU Busy", "", "How long the CPU was generating the frame in milliseconds"},
	{int32(pm.MetricCPUWait), "PM_METRIC_CPU_WAIT", "CPU Wait", "", "How long the CPU spent waiting before it could start generating the frame in milliseconds"},
	{int32(pm.MetricDisplayedFPS), "PM_METRIC_DISPLAYED_FPS", "Displayed FPS", "", "Rate of frame change measurable at display"},
	{int32(pm.MetricPresentedFPS), "PM_METRIC_PRESENTED_FPS", "Presented FPS", "", "Rate of application calls to a Present() function"},
	{int32(pm.MetricGPUTime), "PM_METRIC_GPU_TIME", "GPU Time", "", "Total amount of time between when GPU started frame and when it finished in milliseconds. The GPU may not have been fully busy during this time"},
	{int32(pm.MetricGPUBusy), "PM_METRIC_GPU_BUSY", "GPU Busy", "", "How long the GPU spent working on this frame"},
	{int32(pm.MetricGPUWait), "PM_METRIC_GPU_WAIT", "GPU Wait", "", "How long the GPU spent waiting while working on this frame"},
	{int32(pm.MetricDroppedFrames), "PM_METRIC_DROPPED_FRAMES", "Dropped Frames", "", "Indicates if the frame was not displayed"},
	{int32(pm.MetricDisplayedTime), "PM_METRIC_DISPLAYED_TIME", "Displayed Time", "", "How long this frame was displayed on screen"},
	{int32(pm.MetricSyncInterval), "PM_METRIC_SYNC_INTERVAL", "Sync Interval", "", "The application's requested interval between presents measured in vertical sync/vblank events"},
	{int32(pm.MetricPresentFlags), "PM_METRIC_PRESENT_FLAGS", "Present Flags", "", "Flags used to configure the present operation"},
	{int32(pm.MetricPresentMode), "PM_METRIC_PRESENT_MODE", "Present Mode", "", "Method used to present the frame"},
	{int32(pm.MetricPresentRuntime), "PM_METRIC_PRESENT_RUNTIME", "Present Runtime", "", "The graphics runtime used for the present operation (DXGI, D3D9, etc.)"},
	{int32(pm.MetricAllowsTearing), "PM_METRIC_ALLOWS_TEARING", "Allows Tearing", "", "Indicates if the frame allows tearing"},
	{int32(pm.MetricGPULatency), "PM_METRIC_GPU_LATENCY", "GPU Latency", "", "How long it took until GPU work for this frame started"},
	{int32(pm.MetricDisplayLatency), "PM_METRIC_DISPLAY_LATENCY", "Display Latency", "", "Time between frame submission and scan out to display"},
	{int32(pm.MetricClickToPhotonLatency), "PM_METRIC_CLICK_TO_PHOTON_LATENCY", "Click To Photon Latency", "", "Time between input and display"},
	{int32(pm.MetricGPUSustainedPowerLimit), "PM_METRIC_GPU_SUSTAINED_POWER_LIMIT", "GPU Sustained Power Limit", "", "Sustained power limit of the GPU"},
	{int32(pm.MetricGPUPower), "PM_METRIC_GPU_POWER", "GPU Power", "", "Power consumed by the graphics adapter"},
	{int32(pm.MetricGPUVoltage), "PM_METRIC_GPU_VOLTAGE", "GPU Voltage", "", "Voltage consumed by the graphics adapter"},
	{int32(pm.MetricGPUFrequency), "PM_METRIC_GPU_FREQUENCY", "GPU Frequency", "", "Clock speed of the GPU cores"},
	{int32(pm.MetricGPUTemperature), "PM_METRIC_GPU_TEMPERATURE", "GPU Temperature", "", "Temperature of the GPU"},
	{int32(pm.MetricGPUFanSpeed), "PM_METRIC_GPU_FAN_SPEED", "GPU Fan Speed", "", "Rate at which a GPU cooler fan is rotating"},
	{int32(pm.MetricGPUUtilization), "PM_METRIC_GPU_UTILIZATION", "GPU Utilization", "", "Amount of GPU processing capacity being used"},
	{int32(pm.MetricGPURenderComputeUtilization), "PM_METRIC_GPU_RENDER_COMPUTE_UTILIZATION", "3D/Compute Utilization", "", "Amount of 3D/Compute processing capacity being used"},
	{int32(pm.MetricGPUMediaUtilization), "PM_METRIC_GPU_MEDIA_UTILIZATION", "Media Utilization", "", "Amount of media processing capacity being used"},
	{int32(pm.MetricGPUPowerLimited), "PM_METRIC_GPU_POWER_LIMITED", "GPU Power Limited", "", "GPU frequency is being limited because GPU is exceeding maximum power limits"},
	{int32(pm.MetricGPUTemperatureLimited), "PM_METRIC_GPU_TEMPERATURE_LIMITED", "GPU Temperature Limited", "", "GPU frequency is being limited because GPU is exceeding maximum temperature limits"},
	{int32(pm.MetricGPUCurrentLimited), "PM_METRIC_GPU_CURRENT_LIMITED", "GPU Current Limited", "", "GPU frequency is being limited because GPU is exceeding maximum current limits"},
	{int32(pm.MetricGPUVoltageLimited), "PM_METRIC_GPU_VOLTAGE_LIMITED", "GPU Voltage Limited", "", "GPU frequency is being limited because GPU is exceeding maximum voltage limits"},
	{int32(pm.MetricGPUUtilizationLimited), "PM_METRIC_GPU_UTILIZATION_LIMITED", "GPU Utilization Limited", "", "GPU frequency is being limited due to low GPU utilization"},
	{int32(pm.MetricGPUMemPower), "PM_METRIC_GPU_MEM_POWER", "GPU Memory Power", "", "Power consumed by the GPU memory"},
	{int32(pm.MetricGPUMemVoltage), "PM_METRIC_GPU_MEM_VOLTAGE", "GPU Memory Voltage", "", "Voltage consumed by the GPU memory"},
	{int32(pm.MetricGPUMemFrequency), "PM_METRIC_GPU_MEM_FREQUENCY", "GPU Memory Frequency", "", "Clock speed of the GPU memory"},
	{int32(pm.MetricGPUMemEffectiveFrequency), "PM_METRIC_GPU_MEM_EFFECTIVE_FREQUENCY", "GPU Memory Effective Frequency", "", "Effective data transfer rate GPU memory can sustain"},
	{int32(pm.MetricGPUMemTemperature), "PM_METRIC_GPU_MEM_TEMPERATURE", "GPU Memory Temperature", "", "Temperature of the GPU memory"},
	{int32(pm.MetricGPUMemSize), "PM_METRIC_GPU_MEM_SIZE", "GPU Memory Size", "", "Size of the GPU memory"},
	{int32(pm.MetricGPUMemUsed), "PM_METRIC_GPU_MEM_USED", "GPU Memory Size Used", "", "Amount of used GPU memory"},
	{int32(pm.MetricGPUMemUtilization), "PM_METRIC_GPU_MEM_UTILIZATION", "GPU Memory Utilization", "", "Percent of GPU memory used"},
	{int32(pm.MetricGPUMemMaxBandwidth), "PM_METRIC_GPU_MEM_MAX_BANDWIDTH", "GPU Memory Max Bandwidth", "", "Maximum total GPU memory bandwidth"},
	{int32(pm.MetricGPUMemWriteBandwidth), "PM_METRIC_GPU_MEM_WRITE_BANDWIDTH", "GPU Memory Write Bandwidth", "", "Maximum GPU memory bandwidth for writing"},
	{int32(pm.MetricGPUMemReadBandwidth), "PM_METRIC_GPU_MEM_READ_BANDWIDTH", "GPU Memory Read Bandwidth", "", "Maximum GPU memory bandwidth for reading"},
	{int32(pm.MetricGPUMemPowerLimited), "PM_METRIC_GPU_MEM_POWER_LIMITED", "GPU Memory Power Limited", "", "Memory frequency is being limited because the memory modules are exceeding the maximum power limits"},
	{int32(pm.MetricGPUMemTemperatureLimited), "PM_METRIC_GPU_MEM_TEMPERATURE_LIMITED", "GPU Memory Temperature Limited", "", "Memory frequency is being limited because the memory modules are exceeding the maximum temperature limits"},
	{int32(pm.MetricGPUMemCurrentLimited), "PM_METRIC_GPU_MEM_CURRENT_LIMITED", "GPU Memory Current Limited", "", "Memory frequency is being limited because the memory modules are exceeding the maximum current limits"},
	{int32(pm.MetricGPUMemVoltageLimited), "PM_METRIC_GPU_MEM_VOLTAGE_LIMITED", "GPU Memory Voltage Limited", "", "Memory frequency is being limited because the memory modules are exceeding the maximum voltage limits"},
	{int32(pm.MetricGPUMemUtilizationLimited), "PM_METRIC_GPU_MEM_UTILIZATION_LIMITED", "GPU Memory Utilization Limited", "", "Memory frequency is being limited due to low memory traffic"},
	{int32(pm.MetricCPUUtilization), "PM_METRIC_CPU_UTILIZATION", "CPU Utilization", "", "Amount of CPU processing capacity being used"},
	{int32(pm.MetricCPUPowerLimit), "PM_METRIC_CPU_POWER_LIMIT", "CPU Power Limit", "", "Power limit of the CPU"},
	{int32(pm.MetricCPUPower), "PM_METRIC_CPU_POWER", "CPU Power", "", "Power consumed by the CPU"},
	{int32(pm.MetricCPUTemperature), "PM_METRIC_CPU_TEMPERATURE", "CPU Temperature", "", "Temperature of the CPU"},
	{int32(pm.MetricCPUFrequency), "PM_METRIC_CPU_FREQUENCY", "CPU Frequency", "", "Clock speed of the CPU"},
	{int32(pm.MetricCPUCoreUtility), "PM_METRIC_CPU_CORE_UTILITY", "CPU Core Utility", "", "Amount of CPU processing utility being used per core"},
}

var statKeys = []keyDef{
	{int32(pm.StatNone), "PM_STAT_NONE", "None", "", "Null stat, typically used when querying static or consuming frame events"},
	{int32(pm.StatAvg), "PM_STAT_AVG", "Average", "avg", "Average or mean of observations over the sliding window"},
	{int32(pm.StatPercentile99), "PM_STAT_PERCENTILE_99", "99th Percentile", "99%", "Value below which 99% of the observations within the sliding window fall"},
	{int32(pm.StatPercentile95), "PM_STAT_PERCENTILE_95", "95th Percentile", "95%", "Value below which 95% of the observations within the sliding window fall"},
	{int32(pm.StatPercentile90), "PM_STAT_PERCENTILE_90", "90th Percentile", "90%", "Value below which 90% of the observations within the sliding window fall"},
	{int32(pm.StatPercentile01), "PM_STAT_PERCENTILE_01", "1st Percentile", "1%", "Value below which 1% of the observations within the sliding window fall"},
	{int32(pm.StatPercentile05), "PM_STAT_PERCENTILE_05", "5th Percentile", "5%", "Value below which 5% of the observations within the sliding window fall"},
	{int32(pm.StatPercentile10), "PM_STAT_PERCENTILE_10", "10th Percentile", "10%", "Value below which 10% of the observations within the sliding window fall"},
	{int32(pm.StatMax), "PM_STAT_MAX", "Maximum", "max", "Maximum value of observations within the sliding window"},
	{int32(pm.StatMin), "PM_STAT_MIN", "Minimum", "min", "Minimum value of observations within the sliding window"},
	{int32(pm.StatMidPoint), "PM_STAT_MID_POINT", "Midpoint", "raw", "Point sample of the observation nearest to the middle of the sliding window"},
	{int32(pm.StatMidLerp), "PM_STAT_MID_LERP", "Mid Lerp", "mlp", "Linear interpolation between the two observations nearest to the middle of the sliding window"},
	{int32(pm.StatNewestPoint), "PM_STAT_NEWEST_POINT", "Newest Point", "npt", "Value in the most recent observation in the sliding window"},
	{int32(pm.StatOldestPoint), "PM_STAT_OLDEST_POINT", "Oldest Point", "opt", "Value in the least recent observation in the sliding window"},
	{int32(pm.StatCount), "PM_STAT_COUNT", "Count", "cnt", "Count of observations in the sliding window matching a predicate (e.g. counting # of observations for which a field is boolean true)"},
	{int32(pm.StatNonZeroAvg), "PM_STAT_NON_ZERO_AVG", "Non-zero Average", "øavg", "Average or mean of frame samples over the sliding window, excluding all zero values"},
}

var statusKeys = []keyDef{
	{int32(pm.StatusSuccess), "PM_STATUS_SUCCESS", "Success", "", "Operation succeeded"},
	{int32(pm.StatusFailure), "PM_STATUS_FAILURE", "Failure", "", "Operation failed"},
	{int32(pm.StatusBadArgument), "PM_STATUS_BAD_ARGUMENT", "Bad Argument", "", "API function was called with invalid argument(s)"},
	{int32(pm.StatusBadHandle), "PM_STATUS_BAD_HANDLE", "Bad Handle", "", "API function was called with an invalid handle"},
	{int32(pm.StatusSessionNotOpen), "PM_STATUS_SESSION_NOT_OPEN", "Session Not Open", "", "Operation requires an open session"},
	{int32(pm.StatusServiceError), "PM_STATUS_SERVICE_ERROR", "Service Error", "", "An error occurred within the service"},
	{int32(pm.StatusInvalidEtlFile), "PM_STATUS_INVALID_ETL_FILE", "Invalid ETL File", "", ""},
	{int32(pm.StatusInvalidPid), "PM_STATUS_INVALID_PID", "Invalid PID", "", "PID does not exist or does not match a process being tracked"},
	{int32(pm.StatusAlreadyTrackingProcess), "PM_STATUS_ALREADY_TRACKING_PROCESS", "Already Tracking Process", "", "Tried to track a process already being tracked"},
	{int32(pm.StatusUnableToCreateNsm), "PM_STATUS_UNABLE_TO_CREATE_NSM", "Unable to Create NSM", "", "Service failed to create shrared memory for data transfer"},
	{int32(pm.StatusInvalidAdapterID), "PM_STATUS_INVALID_ADAPTER_ID", "Invalid Adapter ID", "", "Graphics adapter ID provided does not match any ID in service"},
	{int32(pm.StatusOutOfRange), "PM_STATUS_OUT_OF_RANGE", "Out of Range", "", "Value falls outside of the acceptable range"},
	{int32(pm.StatusInsufficientBuffer), "PM_STATUS_INSUFFICIENT_BUFFER", "Insufficient Buffer", "", "Buffer is not large enough to hold all output data"},
	{int32(pm.StatusPipeError), "PM_STATUS_PIPE_ERROR", "Pipe Error", "", "An error occurred in connecting to or communicating over named pipes"},
	{int32(pm.StatusMiddlewareMissingPath), "PM_STATUS_MIDDLEWARE_MISSING_PATH", "Middleware Missing Path", "", "The path to the Middleware DLL was not found in the registry"},
	{int32(pm.StatusNonexistentFilePath), "PM_STATUS_NONEXISTENT_FILE_PATH", "Nonexistent File Path", "", "The provided path does not point to a file or directory that exists"},
	{int32(pm.StatusMiddlewareInvalidSignature), "PM_STATUS_MIDDLEWARE_INVALID_SIGNATURE", "Middleware Invalid Signature", "", "The DLL was not properly signed or was tampered with"},
	{int32(pm.StatusMiddlewareMissingEndpoint), "PM_STATUS_MIDDLEWARE_MISSING_ENDPOINT", "Middleware Missing Endpoint", "", "A required endpoint function was not found in the Middleware DLL"},
	{int32(pm.StatusMiddlewareVersionLow), "PM_STATUS_MIDDLEWARE_VERSION_LOW", "Middleware Version Low", "", "Middleware DLL version was found to be too low for compatibility"},
	{int32(pm.StatusMiddlewareVersionHigh), "PM_STATUS_MIDDLEWARE_VERSION_HIGH", "Middleware Version High", "", "Middleware DLL version was found to be too high for compatibility"},
	{int32(pm.StatusMiddlewareServiceMismatch), "PM_STATUS_MIDDLEWARE_SERVICE_MISMATCH", "Middleware Service Mismatch", "", "Middleware DLL build ID does not match that of the service"},
}

var unitKeys = []keyDef{
	{int32(pm.UnitDimensionless), "PM_UNIT_DIMENSIONLESS", "Dimensionless", "", "Dimensionless numeric metric"},
	{int32(pm.UnitRatio), "PM_UNIT_RATIO", "Ratio", "", "Ratio of one value to another (such as used / total memory)"},
	{int32(pm.UnitBoolean), "PM_UNIT_BOOLEAN", "Boolean", "", "Boolean value with 1 indicating present/active and 0 indicating vacant/inactive"},
	{int32(pm.UnitPercent), "PM_UNIT_PERCENT", "Percent", "%", "Proportion or ratio represented as a fraction of 100"},
	{int32(pm.UnitFPS), "PM_UNIT_FPS", "Frames Per Second", "fps", "Rate of application frames being presented per unit time"},
	{int32(pm.UnitMicroseconds), "PM_UNIT_MICROSECONDS", "Microseconds", "us", "Time duration in microseconds"},
	{int32(pm.UnitMilliseconds), "PM_UNIT_MILLISECONDS", "Milliseconds", "ms", "Time duration in milliseconds"},
	{int32(pm.UnitSeconds), "PM_UNIT_SECONDS", "Seconds", "s", "Time duration in seconds"},
	{int32(pm.UnitMinutes), "PM_UNIT_MINUTES", "Minutes", "m", "Time duration in minutes"},
	{int32(pm.UnitHours), "PM_UNIT_HOURS", "Hours", "h", "Time duration in hours"},
	{int32(pm.UnitMilliwatts), "PM_UNIT_MILLIWATTS", "Milliwatts", "mW", "Power in milliwatts (millijoules per second)"},
	{int32(pm.UnitWatts), "PM_UNIT_WATTS", "Watts", "W", "Power in watts (Joules per second)"},
	{int32(pm.UnitKilowatts), "PM_UNIT_KILOWATTS", "Kilowatts", "kW", "Power in kilowatts (kilojoules per second)"},
	{int32(pm.UnitVerticalBlanks), "PM_UNIT_VERTICAL_BLANKS", "Vertical Blanks", "vblk", "A count of vertical blanks (hardware display updates)"},
	{int32(pm.UnitMillivolts), "PM_UNIT_MILLIVOLTS", "Millivolts", "mV", "Electric potential 0.001 V"},
	{int32(pm.UnitVolts), "PM_UNIT_VOLTS", "Volts", "V", "Electric potential"},
	{int32(pm.UnitHertz), "PM_UNIT_HERTZ", "Hertz", "Hz", "Frequency in cycles per second"},
	{int32(pm.UnitKilohertz), "PM_UNIT_KILOHERTZ", "Kilohertz", "kHz", "Frequency in thousands of cycles per second"},
	{int32(pm.UnitMegahertz), "PM_UNIT_MEGAHERTZ", "Megahertz", "MHz", "Frequency in millions of cycles per second"},
	{int32(pm.UnitGigahertz), "PM_UNIT_GIGAHERTZ", "Gigahertz", "GHz", "Frequency in billions of cycles per second"},
	{int32(pm.UnitCelsius), "PM_UNIT_CELSIUS", "Degrees Celsius", "°C", "Temperature in degrees Celsius"},
	{int32(pm.UnitRPM), "PM_UNIT_RPM", "Revolutions per Minute", "RPM", "Angular speed in revolutions per minute"},
	{int32(pm.UnitBitsPerSecond), "PM_UNIT_BITS_PER_SECOND", "Bits per Second", "bps", "Bandwidth / data throughput in bits per second"},
	{int32(pm.UnitKilobitsPerSecond), "PM_UNIT_KILOBITS_PER_SECOND", "Kilobits per Second", "kbps", "Bandwidth / data throughput in kilobits per second"},
	{int32(pm.UnitMegabitsPerSecond), "PM_UNIT_MEGABITS_PER_SECOND", "Megabits per Second", "Mbps", "Bandwidth / data throughput in megabits per second"},
	{int32(pm.UnitGigabitsPerSecond), "PM_UNIT_GIGABITS_PER_SECOND", "Gigabits per Second", "Gbps", "Bandwidth / data throughput in gigabits per second"},
	{int32(pm.UnitBytes), "PM_UNIT_BYTES", "Bytes", "B", "Data volume in bytes"},
	{int32(pm.UnitKilobytes), "PM_UNIT_KILOBYTES", "Kilobytes", "kB", "Data volume in kilobytes"},
	{int32(pm.UnitMegabytes), "PM_UNIT_MEGABYTES", "Megabytes", "MB", "Data volume in megabytes"},
	{int32(pm.UnitGigabytes), "PM_UNIT_GIGABYTES", "Gigabytes", "GB", "Data volume in gigabytes"},
	{int32(pm.UnitQPC), "PM_UNIT_QPC", "High-performance timestamp", "qpc", "Timestamp obtained via QueryPerformanceCounter (or compatible)"},
}
var presentModeKeys = []keyDef{
	{int32(pm.PresentModeHardwareLegacyFlip), "PM_PRESENT_MODE_HARDWARE_LEGACY_FLIP", "Hardware: Legacy Flip", "HW Legacy Flip", "Legacy flip model presented directly by the hardware"},
	{int32(pm.PresentModeHardwareLegacyCopyToFrontBuffer), "PM_PRESENT_MODE_HARDWARE_LEGACY_COPY_TO_FRONT_BUFFER", "Hardware: Legacy Copy to front buffer", "HW Legacy Copy", "Legacy blit model presented directly by the hardware"},
	{int32(pm.PresentModeHardwareIndependentFlip), "PM_PRESENT_MODE_HARDWARE_INDEPENDENT_FLIP", "Hardware: Independent Flip", "HW Ind Flip", "Flip presented independently of the compositor"},
	{int32(pm.PresentModeComposedFlip), "PM_PRESENT_MODE_COMPOSED_FLIP", "Composed: Flip", "Cmp Flip", "Flip presented through the compositor"},
	{int32(pm.PresentModeHardwareComposedIndependentFlip), "PM_PRESENT_MODE_HARDWARE_COMPOSED_INDEPENDENT_FLIP", "Hardware Composed: Independent Flip", "HW Cmp Ind Flip", "Flip presented on a hardware overlay plane"},
	{int32(pm.PresentModeComposedCopyWithGPUGDI), "PM_PRESENT_MODE_COMPOSED_COPY_WITH_GPU_GDI", "Composed: Copy with GPU GDI", "Cmp GPU GDI", "Blit composed with GPU GDI"},
	{int32(pm.PresentModeComposedCopyWithCPUGDI), "PM_PRESENT_MODE_COMPOSED_COPY_WITH_CPU_GDI", "Composed: Copy with CPU GDI", "Cmp CPU GDI", "Blit composed with CPU GDI"},
	{int32(pm.PresentModeUnknown), "PM_PRESENT_MODE_UNKNOWN", "Unknown", "", "Present mode could not be determined"},
}

var graphicsRuntimeKeys = []keyDef{
	{int32(pm.GraphicsRuntimeUnknown), "PM_GRAPHICS_RUNTIME_UNKNOWN", "Unknown", "", "Unknown graphics runtime"},
	{int32(pm.GraphicsRuntimeDXGI), "PM_GRAPHICS_RUNTIME_DXGI", "DXGI", "", "DirectX Graphics Infrastructure runtime"},
	{int32(pm.GraphicsRuntimeD3D9), "PM_GRAPHICS_RUNTIME_D3D9", "Direct3D 9", "D3D9", "Direct3D 9 runtime"},
}

var deviceTypeKeys = []keyDef{
	{int32(pm.DeviceTypeIndependent), "PM_DEVICE_TYPE_INDEPENDENT", "Device-independent", "", "Metrics not tied to a specific device"},
	{int32(pm.DeviceTypeGraphicsAdapter), "PM_DEVICE_TYPE_GRAPHICS_ADAPTER", "Graphics Adapter", "GPU", "Graphics adapter or GPU device"},
}

var deviceVendorKeys = []keyDef{
	{int32(pm.DeviceVendorIntel), "PM_DEVICE_VENDOR_INTEL", "Intel", "", "Device vendor Intel"},
	{int32(pm.DeviceVendorNvidia), "PM_DEVICE_VENDOR_NVIDIA", "NVIDIA", "", "Device vendor NVIDIA"},
	{int32(pm.DeviceVendorAMD), "PM_DEVICE_VENDOR_AMD", "AMD", "", "Device vendor AMD"},
	{int32(pm.DeviceVendorUnknown), "PM_DEVICE_VENDOR_UNKNOWN", "Unknown", "", "Unknown device vendor"},
}

var availabilityKeys = []keyDef{
	{int32(pm.MetricAvailabilityAvailable), "PM_METRIC_AVAILABILITY_AVAILABLE", "Available", "", "Metric is available"},
	{int32(pm.MetricAvailabilityUnavailable), "PM_METRIC_AVAILABILITY_UNAVAILABLE", "Unavailable", "", "Metric is not available"},
}

var metricTypeKeys = []keyDef{
	{int32(pm.MetricTypeStatic), "PM_METRIC_TYPE_STATIC", "Static", "", "Value does not change over the life of the process"},
	{int32(pm.MetricTypeDynamic), "PM_METRIC_TYPE_DYNAMIC", "Dynamic", "", "Polled as a statistic over a sliding window"},
	{int32(pm.MetricTypeFrameEvent), "PM_METRIC_TYPE_FRAME_EVENT", "Frame Event", "", "Delivered once per frame event"},
	{int32(pm.MetricTypeDynamicFrame), "PM_METRIC_TYPE_DYNAMIC_FRAME", "Dynamic and Frame Event", "", "Available both polled and per frame"},
}

var dataTypeKeys = []keyDef{
	{int32(pm.DataTypeDouble), "PM_DATA_TYPE_DOUBLE", "Double", "", "64-bit floating point"},
	{int32(pm.DataTypeInt32), "PM_DATA_TYPE_INT32", "32-bit Signed Integer", "", "32-bit signed integer"},
	{int32(pm.DataTypeUint32), "PM_DATA_TYPE_UINT32", "32-bit Unsigned Integer", "", "32-bit unsigned integer"},
	{int32(pm.DataTypeEnum), "PM_DATA_TYPE_ENUM", "Enumeration", "", "Enum key value stored as a 32-bit integer"},
	{int32(pm.DataTypeString), "PM_DATA_TYPE_STRING", "String", "", "Fixed capacity NUL-terminated string"},
	{int32(pm.DataTypeUint64), "PM_DATA_TYPE_UINT64", "64-bit Unsigned Integer", "", "64-bit unsigned integer"},
	{int32(pm.DataTypeBool), "PM_DATA_TYPE_BOOL", "Boolean", "", "Single byte boolean"},
	{int32(pm.DataTypeVoid), "PM_DATA_TYPE_VOID", "Void", "", "No data"},
}
