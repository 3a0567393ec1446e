package telemetry

import "time"

type TelemetryEvent interface {
	Timestamp() time.Time // When the event occurred
	EventType() string    // For categorization/filtering
}

type QueryRegistered struct {
	timestamp time.Time
	Kind      string // "dynamic" or "frame"
	Handle    uint64
	Elements  int
	BlobSize  uint64
}

func (e QueryRegistered) Timestamp() time.Time { return e.timestamp }
func (e QueryRegistered) EventType() string    { return "query_registered" }

func NewQueryRegistered(kind string, handle uint64, elements int, blobSize uint64) QueryRegistered {
	return QueryRegistered{
		timestamp: time.Now(),
		Kind:      kind,
		Handle:    handle,
		Elements:  elements,
		BlobSize:  blobSize,
	}
}

type ProcessTracked struct {
	timestamp time.Time
	Pid       uint32
	Tracking  bool // false when tracking stopped
}

func (e ProcessTracked) Timestamp() time.Time { return e.timestamp }
func (e ProcessTracked) EventType() string    { return "process_tracked" }

func NewProcessTracked(pid uint32, tracking bool) ProcessTracked {
	return ProcessTracked{
		timestamp: time.Now(),
		Pid:       pid,
		Tracking:  tracking,
	}
}

type PollCompleted struct {
	timestamp time.Time
	Handle    uint64
	Pid       uint32
	Populated uint32
	Latency   time.Duration // Time spent in the provider call
}

func (e PollCompleted) Timestamp() time.Time { return e.timestamp }
func (e PollCompleted) EventType() string    { return "poll_completed" }

func NewPollCompleted(handle uint64, pid uint32, populated uint32, latency time.Duration) PollCompleted {
	return PollCompleted{
		timestamp: time.Now(),
		Handle:    handle,
		Pid:       pid,
		Populated: populated,
		Latency:   latency,
	}
}

type FramesConsumed struct {
	timestamp time.Time
	Handle    uint64
	Pid       uint32
	Frames    uint32
	Latency   time.Duration
}

func (e FramesConsumed) Timestamp() time.Time { return e.timestamp }
func (e FramesConsumed) EventType() string    { return "frames_consumed" }

func NewFramesConsumed(handle uint64, pid uint32, frames uint32, latency time.Duration) FramesConsumed {
	return FramesConsumed{
		timestamp: time.Now(),
		Handle:    handle,
		Pid:       pid,
		Frames:    frames,
		Latency:   latency,
	}
}

type ProviderFailed struct {
	timestamp time.Time
	Err       error
	Op        string // Provider call that failed (e.g., "dynamic_poll", "consume")
	Severity  ErrorSeverity
}

func (e ProviderFailed) Timestamp() time.Time { return e.timestamp }
func (e ProviderFailed) EventType() string    { return "provider_failed" }

func NewProviderFailed(err error, op string, severity ErrorSeverity) ProviderFailed {
	return ProviderFailed{
		timestamp: time.Now(),
		Err:       err,
		Op:        op,
		Severity:  severity,
	}
}

type IntrospectionRefreshed struct {
	timestamp time.Time
	Metrics   int
	Devices   int
}

func (e IntrospectionRefreshed) Timestamp() time.Time { return e.timestamp }
func (e IntrospectionRefreshed) EventType() string    { return "introspection_refreshed" }

func NewIntrospectionRefreshed(metrics, devices int) IntrospectionRefreshed {
	return IntrospectionRefreshed{
		timestamp: time.Now(),
		Metrics:   metrics,
		Devices:   devices,
	}
}

type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
	ErrorSeverityCritical
)

func (s ErrorSeverity) String() string {
	switch s {
	case ErrorSeverityInfo:
		return "info"
	case ErrorSeverityWarning:
		return "warning"
	case ErrorSeverityError:
		return "error"
	case ErrorSeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

type TelemetryPublisher interface {
	// Publish sends a telemetry event to the aggregator.
	// This is a non-blocking, fire-and-forget call.
	Publish(event TelemetryEvent)
}
