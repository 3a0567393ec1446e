package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusPublisher exports telemetry events as Prometheus metrics. It
// updates its collectors inline in Publish.
type PrometheusPublisher struct {
	polls         prometheus.Counter
	blobs         prometheus.Counter
	frames        prometheus.Counter
	queries       *prometheus.CounterVec
	errors        *prometheus.CounterVec
	trackedPids   prometheus.Gauge
	callDuration  *prometheus.HistogramVec
	lastPopulated prometheus.Gauge
}

// NewPrometheusPublisher registers its collectors with reg.
func NewPrometheusPublisher(reg prometheus.Registerer) *PrometheusPublisher {
	factory := promauto.With(reg)
	return &PrometheusPublisher{
		polls: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pmquery",
			Name:      "polls_total",
			Help:      "Number of dynamic query polls completed",
		}),
		blobs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pmquery",
			Name:      "blobs_polled_total",
			Help:      "Number of blobs populated by dynamic polls",
		}),
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pmquery",
			Name:      "frames_consumed_total",
			Help:      "Number of frame events consumed",
		}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pmquery",
			Name:      "queries_registered_total",
			Help:      "Queries registered by kind",
		}, []string{"kind"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pmquery",
			Name:      "provider_errors_total",
			Help:      "Failed provider calls by operation and severity",
		}, []string{"op", "severity"}),
		trackedPids: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pmquery",
			Name:      "tracked_processes",
			Help:      "Processes currently tracked",
		}),
		callDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pmquery",
			Name:      "provider_call_duration_seconds",
			Help:      "Latency of poll and consume calls",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 14), // 50us to ~400ms
		}, []string{"call"}),
		lastPopulated: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pmquery",
			Name:      "last_poll_populated_blobs",
			Help:      "Blobs populated by the most recent dynamic poll",
		}),
	}
}

func (p *PrometheusPublisher) Publish(event TelemetryEvent) {
	switch e := event.(type) {
	case PollCompleted:
		p.polls.Inc()
		p.blobs.Add(float64(e.Populated))
		p.lastPopulated.Set(float64(e.Populated))
		p.callDuration.WithLabelValues("poll").Observe(e.Latency.Seconds())
	case FramesConsumed:
		p.frames.Add(float64(e.Frames))
		p.callDuration.WithLabelValues("consume").Observe(e.Latency.Seconds())
	case QueryRegistered:
		p.queries.WithLabelValues(e.Kind).Inc()
	case ProcessTracked:
		if e.Tracking {
			p.trackedPids.Inc()
		} else {
			p.trackedPids.Dec()
		}
	case ProviderFailed:
		p.errors.WithLabelValues(e.Op, e.Severity.String()).Inc()
	}
}
