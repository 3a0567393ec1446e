package telemetry

// NoopPublisher drops every event. Used when telemetry is disabled.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (n *NoopPublisher) Publish(event TelemetryEvent) {}

// MultiPublisher fans an event out to several publishers.
type MultiPublisher []TelemetryPublisher

func (m MultiPublisher) Publish(event TelemetryEvent) {
	for _, p := range m {
		if p != nil {
			p.Publish(event)
		}
	}
}
