package config

// Configuration key constants
// Environment variable names double as resolver keys. The config file uses
// the same names lower-cased without the PM_ prefix (see fileKey).

const (
	// Target process
	KeyPid = "PM_PID"

	// Query configuration keys
	KeyWindowMs       = "PM_WINDOW_MS"
	KeyMetricOffsetMs = "PM_METRIC_OFFSET_MS"
	KeyPollIntervalMs = "PM_POLL_INTERVAL_MS"
	KeyFrameCapacity  = "PM_FRAME_CAPACITY"
	KeyGPUDeviceID    = "PM_GPU_DEVICE_ID"

	// Provider configuration keys
	KeyTelemetryPeriodMs = "PM_TELEMETRY_PERIOD_MS"
	KeyIntrospectionFile = "PM_INTROSPECTION_FILE"

	// Output configuration keys
	KeyMetricsAddr    = "PM_METRICS_ADDR"
	KeyDgraphAddr     = "PM_DGRAPH_ADDR"
	KeyRelayURL       = "PM_RELAY_URL"
	KeyNostrSecretKey = "PM_NOSTR_SECKEY"
	KeyWatch          = "PM_WATCH"

	KeyDumpIntrospection = "PM_DUMP_INTROSPECTION"

	KeyConfigFile = "PM_CONFIG_FILE"
)

// Default values for configuration
const (
	DefaultWindowMs          = 1000.0
	DefaultMetricOffsetMs    = 0.0
	DefaultPollIntervalMs    = 250
	DefaultFrameCapacity     = 0
	DefaultGPUDeviceID       = 1
	DefaultTelemetryPeriodMs = 16
	DefaultConfigName        = "pmquery"

	MaxTelemetryPeriodMs = 5000
)

// CLI flag name constants
const (
	FlagPid               = "pid"
	FlagWindowMs          = "window-ms"
	FlagMetricOffsetMs    = "metric-offset-ms"
	FlagPollIntervalMs    = "poll-interval-ms"
	FlagFrameCapacity     = "frame-capacity"
	FlagGPUDeviceID       = "gpu-device-id"
	FlagTelemetryPeriodMs = "telemetry-period-ms"
	FlagIntrospectionFile = "introspection-file"
	FlagDumpIntrospection = "dump-introspection"
	FlagMetricsAddr       = "metrics-addr"
	FlagDgraphAddr        = "dgraph-addr"
	FlagRelayURL          = "relay-url"
	FlagNostrSecretKey    = "nostr-secret-key"
	FlagWatch             = "watch"
	FlagConfigFile        = "config"
	FlagHelp              = "help"
)

// Help message constants
const (
	AppName        = "pmquery"
	AppDescription = "Poll frame and system telemetry through the PresentMon query engine"
	UsageFormat    = "pmquery [OPTIONS]"

	HelpPid               = "Process id to track (default: this process)"
	HelpWindowMs          = "Dynamic query window in milliseconds"
	HelpMetricOffsetMs    = "Dynamic query window offset in milliseconds"
	HelpPollIntervalMs    = "Interval between polls in milliseconds"
	HelpFrameCapacity     = "Frame blobs per consume, 0 disables the frame consumer"
	HelpGPUDeviceID       = "Device id of the adapter used for GPU metrics"
	HelpTelemetryPeriodMs = "Adapter telemetry polling period in milliseconds"
	HelpIntrospectionFile = "Serve the metric catalog from a msgpack introspection file"
	HelpDumpIntrospection = "Write the provider's introspection as msgpack to this path and exit"
	HelpMetricsAddr       = "Listen address for the prometheus /metrics endpoint"
	HelpDgraphAddr        = "Dgraph gRPC address for metric catalog export"
	HelpRelayURL          = "Nostr relay URL for sample publishing"
	HelpNostrSecretKey    = "Nostr secret key (hex or nsec), required with a relay URL"
	HelpWatch             = "Show a live table instead of log lines"
	HelpConfigFile        = "Path to a YAML config file"
	HelpShowHelp          = "Show this help message"

	EnvDescPid               = "Process id to track"
	EnvDescWindowMs          = "Dynamic query window in milliseconds"
	EnvDescMetricOffsetMs    = "Dynamic query window offset in milliseconds"
	EnvDescPollIntervalMs    = "Interval between polls in milliseconds"
	EnvDescFrameCapacity     = "Frame blobs per consume"
	EnvDescGPUDeviceID       = "GPU adapter device id"
	EnvDescTelemetryPeriodMs = "Adapter telemetry polling period in milliseconds"
	EnvDescIntrospectionFile = "Msgpack introspection file for the provider catalog"
	EnvDescDumpIntrospection = "Introspection dump path"
	EnvDescMetricsAddr       = "Prometheus listen address"
	EnvDescDgraphAddr        = "Dgraph gRPC address"
	EnvDescRelayURL          = "Nostr relay URL"
	EnvDescNostrSecretKey    = "Nostr secret key"
	EnvDescWatch             = "Watch mode (true/false)"
	EnvDescConfigFile        = "Path to a YAML config file"

	HelpOptions         = "Options:"
	HelpEnvironmentVars = "Environment Variables:"
	HelpUsage           = "Usage:"
	HelpNote            = "Note: CLI options override environment variables, which override the config file"
)
