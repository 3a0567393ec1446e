package pm

import "fmt"

// Metric identifies a telemetry metric.
type Metric int32

const (
	MetricApplication Metric = iota
	MetricSwapChainAddress
	MetricGPUVendor
	MetricGPUName
	MetricCPUVendor
	MetricCPUName
	MetricTime
	MetricCPUFrameQPC
	MetricFrameTime
	MetricCPUBusy
	MetricCPUWait
	MetricDisplayedFPS
	MetricPresentedFPS
	MetricGPUTime
	MetricGPUBusy
	MetricGPUWait
	MetricDroppedFrames
	MetricDisplayedTime
	MetricSyncInterval
	MetricPresentFlags
	MetricPresentMode
	MetricPresentRuntime
	MetricAllowsTearing
	MetricGPULatency
	MetricDisplayLatency
	MetricClickToPhotonLatency
	MetricGPUSustainedPowerLimit
	MetricGPUPower
	MetricGPUVoltage
	MetricGPUFrequency
	MetricGPUTemperature
	MetricGPUFanSpeed
	MetricGPUUtilization
	MetricGPURenderComputeUtilization
	MetricGPUMediaUtilization
	MetricGPUPowerLimited
	MetricGPUTemperatureLimited
	MetricGPUCurrentLimited
	MetricGPUVoltageLimited
	MetricGPUUtilizationLimited
	MetricGPUMemPower
	MetricGPUMemVoltage
	MetricGPUMemFrequency
	MetricGPUMemEffectiveFrequency
	MetricGPUMemTemperature
	MetricGPUMemSize
	MetricGPUMemUsed
	MetricGPUMemUtilization
	MetricGPUMemMaxBandwidth
	MetricGPUMemWriteBandwidth
	MetricGPUMemReadBandwidth
	MetricGPUMemPowerLimited
	MetricGPUMemTemperatureLimited
	MetricGPUMemCurrentLimited
	MetricGPUMemVoltageLimited
	MetricGPUMemUtilizationLimited
	MetricCPUUtilization
	MetricCPUPowerLimit
	MetricCPUPower
	MetricCPUTemperature
	MetricCPUFrequency
	MetricCPUCoreUtility
)

var metricSymbols = [...]string{
	"PM_METRIC_APPLICATION",
	"PM_METRIC_SWAP_CHAIN_ADDRESS",
	"PM_METRIC_GPU_VENDOR",
	"PM_METRIC_GPU_NAME",
	"PM_METRIC_CPU_VENDOR",
	"PM_METRIC_CPU_NAME",
	"PM_METRIC_TIME",
	"PM_METRIC_CPU_FRAME_QPC",
	"PM_METRIC_FRAME_TIME",
	"PM_METRIC_CPU_BUSY",
	"PM_METRIC_CPU_WAIT",
	"PM_METRIC_DISPLAYED_FPS",
	"PM_METRIC_PRESENTED_FPS",
	"PM_METRIC_GPU_TIME",
	"PM_METRIC_GPU_BUSY",
	"PM_METRIC_GPU_WAIT",
	"PM_METRIC_DROPPED_FRAMES",
	"PM_METRIC_DISPLAYED_TIME",
	"PM_METRIC_SYNC_INTERVAL",
	"PM_METRIC_PRESENT_FLAGS",
	"PM_METRIC_PRESENT_MODE",
	"PM_METRIC_PRESENT_RUNTIME",
	"PM_METRIC_ALLOWS_TEARING",
	"PM_METRIC_GPU_LATENCY",
	"PM_METRIC_DISPLAY_LATENCY",
	"PM_METRIC_CLICK_TO_PHOTON_LATENCY",
	"PM_METRIC_GPU_SUSTAINED_POWER_LIMIT",
	"PM_METRIC_GPU_POWER",
	"PM_METRIC_GPU_VOLTAGE",
	"PM_METRIC_GPU_FREQUENCY",
	"PM_METRIC_GPU_TEMPERATURE",
	"PM_METRIC_GPU_FAN_SPEED",
	"PM_METRIC_GPU_UTILIZATION",
	"PM_METRIC_GPU_RENDER_COMPUTE_UTILIZATION",
	"PM_METRIC_GPU_MEDIA_UTILIZATION",
	"PM_METRIC_GPU_POWER_LIMITED",
	"PM_METRIC_GPU_TEMPERATURE_LIMITED",
	"PM_METRIC_GPU_CURRENT_LIMITED",
	"PM_METRIC_GPU_VOLTAGE_LIMITED",
	"PM_METRIC_GPU_UTILIZATION_LIMITED",
	"PM_METRIC_GPU_MEM_POWER",
	"PM_METRIC_GPU_MEM_VOLTAGE",
	"PM_METRIC_GPU_MEM_FREQUENCY",
	"PM_METRIC_GPU_MEM_EFFECTIVE_FREQUENCY",
	"PM_METRIC_GPU_MEM_TEMPERATURE",
	"PM_METRIC_GPU_MEM_SIZE",
	"PM_METRIC_GPU_MEM_USED",
	"PM_METRIC_GPU_MEM_UTILIZATION",
	"PM_METRIC_GPU_MEM_MAX_BANDWIDTH",
	"PM_METRIC_GPU_MEM_WRITE_BANDWIDTH",
	"PM_METRIC_GPU_MEM_READ_BANDWIDTH",
	"PM_METRIC_GPU_MEM_POWER_LIMITED",
	"PM_METRIC_GPU_MEM_TEMPERATURE_LIMITED",
	"PM_METRIC_GPU_MEM_CURRENT_LIMITED",
	"PM_METRIC_GPU_MEM_VOLTAGE_LIMITED",
	"PM_METRIC_GPU_MEM_UTILIZATION_LIMITED",
	"PM_METRIC_CPU_UTILIZATION",
	"PM_METRIC_CPU_POWER_LIMIT",
	"PM_METRIC_CPU_POWER",
	"PM_METRIC_CPU_TEMPERATURE",
	"PM_METRIC_CPU_FREQUENCY",
	"PM_METRIC_CPU_CORE_UTILITY",
}

func (m Metric) String() string {
	if m >= 0 && int(m) < len(metricSymbols) {
		return metricSymbols[m]
	}
	return fmt.Sprintf("PM_METRIC(%d)", int32(m))
}

// MetricCount is the number of metric ids defined.
const MetricCount = len(metricSymbols)
