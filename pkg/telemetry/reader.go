package telemetry

type Snapshot struct {
	// Core counters
	PollsTotal        uint64
	BlobsPolled       uint64
	FramesTotal       uint64
	ErrorsTotal       uint64
	QueriesRegistered map[string]uint64

	// Tracking state
	TrackedPids         []uint32
	LastPopulated       uint32
	IntrospectedMetrics int

	// Rate metrics
	PollsPerSecond  float64
	FramesPerSecond float64

	// Latency metrics
	AvgLatencyMs float64
	MaxLatencyMs float64

	// System metrics
	UptimeSeconds      float64
	ChannelUtilization float64

	// Error breakdown
	ErrorsByOp       map[string]uint64
	ErrorsBySeverity map[ErrorSeverity]uint64
	RecentErrors     []string
}

type TelemetryReader interface {
	Snapshot() Snapshot
}
