package telemetry

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Clock interface allows for deterministic testing
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Config for telemetry settings
type Config struct {
	BufferSize        int
	MaxRecentErrors   int
	RateWindowSeconds int
	LatencySamples    int
}

func DefaultConfig() Config {
	return Config{
		BufferSize:        1000,
		MaxRecentErrors:   50,
		RateWindowSeconds: 10,
		LatencySamples:    100,
	}
}

// Aggregator folds telemetry events into counters that can be read with
// Snapshot while the query loop keeps publishing.
type Aggregator struct {
	mu    sync.RWMutex
	clock Clock
	cfg   Config

	// Core counters
	pollsTotal  uint64
	blobsPolled uint64
	framesTotal uint64
	errorsTotal uint64

	queriesRegistered map[string]uint64
	errorsByOp        map[string]uint64
	errorsBySeverity  map[ErrorSeverity]uint64

	// Rate calculations
	pollTimes  []time.Time
	frameTimes []frameSample

	// Current state
	trackedPids         map[uint32]bool
	lastPopulated       uint32
	introspectedMetrics int

	// Recent errors (ring buffer)
	recentErrors []string
	errorIndex   int

	// Latency tracking (ring buffer)
	latencies    []time.Duration
	latencyIndex int

	eventCh chan TelemetryEvent
	done    chan struct{}
	wg      sync.WaitGroup

	startTime time.Time
}

type frameSample struct {
	at     time.Time
	frames uint32
}

func NewAggregator(clock Clock, cfg Config) *Aggregator {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.MaxRecentErrors <= 0 {
		cfg.MaxRecentErrors = 1
	}
	if cfg.LatencySamples <= 0 {
		cfg.LatencySamples = 1
	}
	if cfg.RateWindowSeconds <= 0 {
		cfg.RateWindowSeconds = 1
	}

	return &Aggregator{
		clock:             clock,
		cfg:               cfg,
		queriesRegistered: make(map[string]uint64),
		errorsByOp:        make(map[string]uint64),
		errorsBySeverity:  make(map[ErrorSeverity]uint64),
		trackedPids:       make(map[uint32]bool),
		recentErrors:      make([]string, cfg.MaxRecentErrors),
		latencies:         make([]time.Duration, cfg.LatencySamples),
		eventCh:           make(chan TelemetryEvent, cfg.BufferSize),
		done:              make(chan struct{}),
		startTime:         clock.Now(),
	}
}

// Start begins processing telemetry events
func (a *Aggregator) Start(ctx context.Context) {
	a.wg.Add(1)
	go a.processEvents(ctx)
}

// Stop gracefully shuts down the aggregator
func (a *Aggregator) Stop() {
	close(a.done)
	a.wg.Wait()
}

// Publish implements TelemetryPublisher. Events are dropped when the buffer
// is full so the polling loop never blocks on telemetry.
func (a *Aggregator) Publish(event TelemetryEvent) {
	select {
	case a.eventCh <- event:
	default:
	}
}

// Snapshot implements TelemetryReader
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	now := a.clock.Now()
	avgLatency, maxLatency := a.calculateLatencyMetrics()

	queriesCopy := make(map[string]uint64, len(a.queriesRegistered))
	for k, v := range a.queriesRegistered {
		queriesCopy[k] = v
	}
	errorsByOpCopy := make(map[string]uint64, len(a.errorsByOp))
	for k, v := range a.errorsByOp {
		errorsByOpCopy[k] = v
	}
	errorsBySeverityCopy := make(map[ErrorSeverity]uint64, len(a.errorsBySeverity))
	for k, v := range a.errorsBySeverity {
		errorsBySeverityCopy[k] = v
	}

	pids := make([]uint32, 0, len(a.trackedPids))
	for pid := range a.trackedPids {
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

	// newest first
	recentErrors := make([]string, 0)
	for i := 0; i < len(a.recentErrors); i++ {
		idx := (a.errorIndex - i - 1 + len(a.recentErrors)) % len(a.recentErrors)
		if a.recentErrors[idx] != "" {
			recentErrors = append(recentErrors, a.recentErrors[idx])
		}
	}

	channelUtilization := 0.0
	if cap(a.eventCh) > 0 {
		channelUtilization = float64(len(a.eventCh)) / float64(cap(a.eventCh)) * 100
	}

	return Snapshot{
		PollsTotal:          a.pollsTotal,
		BlobsPolled:         a.blobsPolled,
		FramesTotal:         a.framesTotal,
		ErrorsTotal:         a.errorsTotal,
		QueriesRegistered:   queriesCopy,
		TrackedPids:         pids,
		LastPopulated:       a.lastPopulated,
		IntrospectedMetrics: a.introspectedMetrics,
		PollsPerSecond:      a.pollRate(now),
		FramesPerSecond:     a.frameRate(now),
		AvgLatencyMs:        avgLatency,
		MaxLatencyMs:        maxLatency,
		UptimeSeconds:       now.Sub(a.startTime).Seconds(),
		ChannelUtilization:  channelUtilization,
		ErrorsByOp:          errorsByOpCopy,
		ErrorsBySeverity:    errorsBySeverityCopy,
		RecentErrors:        recentErrors,
	}
}

func (a *Aggregator) processEvents(ctx context.Context) {
	defer a.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case event := <-a.eventCh:
			a.handleEvent(event)
		}
	}
}

func (a *Aggregator) handleEvent(event TelemetryEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()

	switch e := event.(type) {
	case PollCompleted:
		a.pollsTotal++
		a.blobsPolled += uint64(e.Populated)
		a.lastPopulated = e.Populated
		a.addPollTime(now)
		a.addLatency(e.Latency)

	case FramesConsumed:
		a.framesTotal += uint64(e.Frames)
		a.addFrames(now, e.Frames)
		a.addLatency(e.Latency)

	case QueryRegistered:
		a.queriesRegistered[e.Kind]++

	case ProcessTracked:
		if e.Tracking {
			a.trackedPids[e.Pid] = true
		} else {
			delete(a.trackedPids, e.Pid)
		}

	case IntrospectionRefreshed:
		a.introspectedMetrics = e.Metrics

	case ProviderFailed:
		a.errorsTotal++
		a.errorsByOp[e.Op]++
		a.errorsBySeverity[e.Severity]++
		if e.Err != nil {
			a.addRecentError(e.Err.Error())
		}
	}
}

func (a *Aggregator) cutoff(t time.Time) time.Time {
	return t.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)
}

func (a *Aggregator) addPollTime(t time.Time) {
	cutoff := a.cutoff(t)
	for len(a.pollTimes) > 0 && a.pollTimes[0].Before(cutoff) {
		a.pollTimes = a.pollTimes[1:]
	}
	a.pollTimes = append(a.pollTimes, t)
}

func (a *Aggregator) addFrames(t time.Time, n uint32) {
	cutoff := a.cutoff(t)
	for len(a.frameTimes) > 0 && a.frameTimes[0].at.Before(cutoff) {
		a.frameTimes = a.frameTimes[1:]
	}
	a.frameTimes = append(a.frameTimes, frameSample{at: t, frames: n})
}

func (a *Aggregator) addLatency(latency time.Duration) {
	a.latencies[a.latencyIndex] = latency
	a.latencyIndex = (a.latencyIndex + 1) % len(a.latencies)
}

func (a *Aggregator) addRecentError(err string) {
	a.recentErrors[a.errorIndex] = err
	a.errorIndex = (a.errorIndex + 1) % len(a.recentErrors)
}

func (a *Aggregator) pollRate(now time.Time) float64 {
	cutoff := a.cutoff(now)
	count := 0
	for _, t := range a.pollTimes {
		if t.After(cutoff) {
			count++
		}
	}
	return float64(count) / float64(a.cfg.RateWindowSeconds)
}

func (a *Aggregator) frameRate(now time.Time) float64 {
	cutoff := a.cutoff(now)
	var frames uint64
	for _, s := range a.frameTimes {
		if s.at.After(cutoff) {
			frames += uint64(s.frames)
		}
	}
	return float64(frames) / float64(a.cfg.RateWindowSeconds)
}

func (a *Aggregator) calculateLatencyMetrics() (float64, float64) {
	var sum, max time.Duration
	n := 0
	for _, lat := range a.latencies {
		if lat <= 0 {
			continue
		}
		sum += lat
		n++
		if lat > max {
			max = lat
		}
	}
	if n == 0 {
		return 0.0, 0.0
	}
	avg := float64(sum) / float64(n) / float64(time.Millisecond)
	return avg, float64(max) / float64(time.Millisecond)
}
